// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package biometric

import "context"

// fakeDetector reports a miss unless hit is set, in which case it returns
// the whole image as the crop; a miss exercises the "continue with the
// full image" branch spec §4.7 names.
type fakeDetector struct{ hit bool }

func (d fakeDetector) Detect(ctx context.Context, image []byte) ([]byte, bool) {
	if !d.hit {
		return nil, false
	}
	return image, true
}

// fakeEmbedder maps each byte of image deterministically into a
// fixed-dimension vector, so two distinct source images that share a
// prefix produce nearby-but-distinct embeddings and the same image always
// produces the same embedding.
type fakeEmbedder struct{ dimension int }

func (e fakeEmbedder) Embed(ctx context.Context, image []byte) ([]float32, error) {
	v := make([]float32, e.dimension)
	for i := range v {
		if i < len(image) {
			v[i] = float32(image[i])
		}
	}
	return v, nil
}
