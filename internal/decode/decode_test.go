package decode

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/codemetry/codemetry/internal/errors"
)

func TestContent(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		encoding string
		want     string
		wantErr  error
	}{
		{
			name:     "single chunk",
			content:  base64.StdEncoding.EncodeToString([]byte("int main() {}\n")),
			encoding: "base64",
			want:     "int main() {}\n",
		},
		{
			name: "newline joined chunks decoded independently",
			content: base64.StdEncoding.EncodeToString([]byte("first half ")) + "\n" +
				base64.StdEncoding.EncodeToString([]byte("second half")),
			encoding: "base64",
			want:     "first half second half",
		},
		{
			name:     "trailing newline ignored",
			content:  base64.StdEncoding.EncodeToString([]byte("x")) + "\n",
			encoding: "base64",
			want:     "x",
		},
		{
			name:     "empty content",
			content:  "",
			encoding: "base64",
			want:     "",
		},
		{
			name:     "unsupported encoding",
			content:  "anything",
			encoding: "utf-7",
			wantErr:  appErrors.ErrUnsupportedEncoding,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Content(tt.content, tt.encoding)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestContentInvalidBase64(t *testing.T) {
	_, err := Content("not valid base64!!!", "base64")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "base64")
}
