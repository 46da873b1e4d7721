package gh

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandURLTemplate(t *testing.T) {
	tests := []struct {
		name     string
		template string
		params   map[string]string
		want     string
		wantErr  bool
	}{
		{
			name:     "branch placeholder",
			template: "https://api.github.com/repos/o/r/branches{/branch}",
			params:   map[string]string{"branch": "main"},
			want:     "https://api.github.com/repos/o/r/branches/main",
		},
		{
			name:     "sha placeholder",
			template: "https://api.github.com/repos/o/r/git/commits{/sha}",
			params:   map[string]string{"sha": "abc123"},
			want:     "https://api.github.com/repos/o/r/git/commits/abc123",
		},
		{
			name:     "no placeholders",
			template: "https://api.github.com/repos/o/r",
			params:   nil,
			want:     "https://api.github.com/repos/o/r",
		},
		{
			name:     "missing parameter",
			template: "https://api.github.com/repos/o/r/branches{/branch}",
			params:   map[string]string{},
			wantErr:  true,
		},
		{
			name:     "empty value treated as missing",
			template: "https://api.github.com/repos/o/r/branches{/branch}",
			params:   map[string]string{"branch": ""},
			wantErr:  true,
		},
		{
			name:     "query template is dropped",
			template: "https://api.github.com/repos/o/r/git/trees{/sha}{?recursive}",
			params:   map[string]string{"sha": "deadbeef"},
			want:     "https://api.github.com/repos/o/r/git/trees/deadbeef",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExpandURLTemplate(tt.template, tt.params)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrMissingTemplateParam)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
