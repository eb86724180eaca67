package qr

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeCourses_EmptyInput(t *testing.T) {
	data, err := EncodeCourses(nil)
	require.ErrorIs(t, err, ErrNoCourses)
	assert.Nil(t, data, "no image bytes should be produced for empty input")
}

func TestEncodeCourses_ProducesDecodablePNG(t *testing.T) {
	urls := []string{
		"https://www.youtube.com/watch?v=abc123DEF45",
		"https://www.youtube.com/playlist?list=PLfoo",
	}

	data, err := EncodeCourses(urls)
	require.NoError(t, err)
	require.NotEmpty(t, data)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	bounds := img.Bounds()
	assert.Equal(t, imageSize, bounds.Dx())
	assert.Equal(t, imageSize, bounds.Dy())
}

func TestEncodeCourses_SingleURL(t *testing.T) {
	data, err := EncodeCourses([]string{"https://youtu.be/watch?v=only-one"})
	require.NoError(t, err)
	assert.NotEmpty(t, data)
}
