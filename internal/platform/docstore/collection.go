// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package docstore

// Collection names. Each maps to a `doc_<name>` Postgres table created by
// the migrations under /migrations.
const (
	CollectionUsers         = "users"
	CollectionPets          = "pets"
	CollectionCareRecords   = "care_records"
	CollectionPosts         = "posts"
	CollectionComments      = "comments"
	CollectionLikes         = "likes"
	CollectionNotifications = "notifications"
	CollectionCartoonJobs   = "cartoon_jobs"
)
