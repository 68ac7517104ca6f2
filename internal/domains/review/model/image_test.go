package model_test

import (
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cleanbook/internal/domains/review/model"
)

func TestDecodeDataImage(t *testing.T) {
	png := base64.StdEncoding.EncodeToString([]byte("\x89PNG\r\n\x1a\nfake"))

	tests := []struct {
		name        string
		value       string
		expectedErr error
		expectedExt string
	}{
		{name: "png", value: "data:image/png;base64," + png, expectedExt: ".png"},
		{name: "jpeg", value: "data:image/jpeg;base64," + png, expectedExt: ".jpg"},
		{name: "gif is rejected", value: "data:image/gif;base64," + png, expectedErr: model.ErrUnsupportedImage},
		{name: "not base64 encoded", value: "data:image/png," + png, expectedErr: model.ErrMalformedImage},
		{name: "broken payload", value: "data:image/png;base64,***", expectedErr: model.ErrMalformedImage},
		{
			name:        "too large",
			value:       "data:image/png;base64," + strings.Repeat("A", (model.MaxImageSize/3+2)*4),
			expectedErr: model.ErrImageTooLarge,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			image, err := model.DecodeDataImage(tt.value)

			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expectedExt, image.Extension)
			assert.Equal(t, "\x89PNG\r\n\x1a\nfake", string(image.Data))
		})
	}
}

func TestIsDataImage(t *testing.T) {
	assert.True(t, model.IsDataImage("data:image/png;base64,AAAA"))
	assert.False(t, model.IsDataImage("https://cdn.example.com/reviews/a.png"))
}
