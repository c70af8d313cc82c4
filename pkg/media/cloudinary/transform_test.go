package cloudinary

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const baseAsset = "https://res.cloudinary.com/demo/image/upload/v1700000000/properties/house.jpg"

func TestTransform_NonCloudinaryURLUnchanged(t *testing.T) {
	url := "https://example.com/images/house.jpg"
	assert.Equal(t, url, Transform(url, TransformOptions{Width: 400, Height: 300}))
	assert.Equal(t, url, Thumbnail(url))
}

func TestTransform_MarkerMustOccurExactlyOnce(t *testing.T) {
	doubled := "https://res.cloudinary.com/demo/image/upload/foo/upload/bar.jpg"
	assert.Equal(t, doubled, Transform(doubled, TransformOptions{Width: 100}))

	missing := "https://res.cloudinary.com/demo/image/fetch/v1/bar.jpg"
	assert.Equal(t, missing, Transform(missing, TransformOptions{Width: 100}))
}

func TestTransform_BothDimensions(t *testing.T) {
	got := Transform(baseAsset, TransformOptions{Width: 400, Height: 300, Crop: "fill", Quality: 85})
	assert.Equal(t,
		"https://res.cloudinary.com/demo/image/upload/c_fill,w_400,h_300/q_85/v1700000000/properties/house.jpg",
		got)
}

func TestTransform_SingleDimension(t *testing.T) {
	gotW := Transform(baseAsset, TransformOptions{Width: 400, Crop: "scale"})
	assert.Contains(t, gotW, "/upload/c_scale,w_400/v1700000000/")

	gotH := Transform(baseAsset, TransformOptions{Height: 300, Crop: "fit"})
	assert.Contains(t, gotH, "/upload/c_fit,h_300/v1700000000/")
}

func TestTransform_AutoQualityAndFormatOmitted(t *testing.T) {
	got := Transform(baseAsset, TransformOptions{Width: 100, Height: 100, Format: "auto"})
	assert.NotContains(t, got, "q_")
	assert.NotContains(t, got, "f_")
}

func TestTransform_NoTokensLeavesURLUnchanged(t *testing.T) {
	assert.Equal(t, baseAsset, Transform(baseAsset, TransformOptions{Format: "auto"}))
}

func TestDerivedHelpers(t *testing.T) {
	assert.Equal(t,
		"https://res.cloudinary.com/demo/image/upload/c_thumb,w_150,h_150/q_80/v1700000000/properties/house.jpg",
		Thumbnail(baseAsset))
	assert.Equal(t,
		"https://res.cloudinary.com/demo/image/upload/c_fill,w_400,h_300/q_85/v1700000000/properties/house.jpg",
		Medium(baseAsset))
	assert.Equal(t,
		"https://res.cloudinary.com/demo/image/upload/c_fill,w_800,h_600/q_90/v1700000000/properties/house.jpg",
		Large(baseAsset))
	assert.Equal(t,
		"https://res.cloudinary.com/demo/image/upload/q_85/f_webp/v1700000000/properties/house.jpg",
		Optimized(baseAsset))
}
