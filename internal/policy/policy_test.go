package policy

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func folderBlacklistOnly(names ...string) Rules {
	return Rules{
		FileBlacklist:   List{Enabled: true},
		FolderBlacklist: List{Enabled: true, Names: names},
	}
}

func TestDefault_Validates(t *testing.T) {
	require.NoError(t, Default().Validate())
}

func TestDefault_FreshSlices(t *testing.T) {
	a := Default()
	a.Encrypt.FolderBlacklist.Names[0] = "changed"
	b := Default()
	assert.Equal(t, "render_controllers", b.Encrypt.FolderBlacklist.Names[0])
}

func TestValidate_Invariant(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		op   Op
		axis string
	}{
		{
			name: "both file lists on rename",
			cfg: func() Config {
				c := Default()
				c.Rename.FileWhitelist.Enabled = true
				return c
			}(),
			op:   OpRename,
			axis: "file",
		},
		{
			name: "no folder list on encrypt",
			cfg: func() Config {
				c := Default()
				c.Encrypt.FolderBlacklist.Enabled = false
				return c
			}(),
			op:   OpEncrypt,
			axis: "folder",
		},
		{
			name: "both folder lists on encrypt",
			cfg: func() Config {
				c := Default()
				c.Encrypt.FolderWhitelist.Enabled = true
				return c
			}(),
			op:   OpEncrypt,
			axis: "folder",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			require.Error(t, err)
			var inv *ConfigInvariantError
			require.True(t, errors.As(err, &inv))
			assert.Equal(t, tt.op, inv.Op)
			assert.Equal(t, tt.axis, inv.Axis)
		})
	}
}

func TestAllow_ValidatesFirst(t *testing.T) {
	c := Default()
	c.Encrypt.FileWhitelist.Enabled = true
	ok, err := c.Allow(OpEncrypt, "entity/a.json")
	assert.False(t, ok)
	var inv *ConfigInvariantError
	assert.True(t, errors.As(err, &inv))
}

func TestAllow_FolderBlacklist(t *testing.T) {
	c := Default()
	c.Encrypt = folderBlacklistOnly("particles")

	ok, err := c.Allow(OpEncrypt, "a/particles/b.json")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = c.Allow(OpEncrypt, "a/entity/b.json")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestDecide(t *testing.T) {
	tests := []struct {
		name  string
		rules Rules
		path  string
		want  bool
	}{
		{
			name:  "file blacklist denies basename",
			rules: Rules{FileBlacklist: List{Enabled: true, Names: []string{"manifest.json"}}, FolderBlacklist: List{Enabled: true}},
			path:  "pack/manifest.json",
			want:  false,
		},
		{
			name:  "file blacklist ignores folders with the same name",
			rules: Rules{FileBlacklist: List{Enabled: true, Names: []string{"entity"}}, FolderBlacklist: List{Enabled: true}},
			path:  "entity/pig.json",
			want:  true,
		},
		{
			name:  "folder blacklist does not match basename",
			rules: folderBlacklistOnly("particles"),
			path:  "fx/particles",
			want:  true,
		},
		{
			name:  "file whitelist is authoritative",
			rules: Rules{FileWhitelist: List{Enabled: true, Names: []string{"pig.json"}}, FolderWhitelist: List{Enabled: true, Names: []string{"entity"}}},
			path:  "items/cow.json",
			want:  false,
		},
		{
			name:  "file whitelist allows despite folder whitelist miss",
			rules: Rules{FileWhitelist: List{Enabled: true, Names: []string{"pig.json"}}, FolderWhitelist: List{Enabled: true, Names: []string{"entity"}}},
			path:  "items/pig.json",
			want:  true,
		},
		{
			name:  "blacklist beats a later whitelist",
			rules: Rules{FileBlacklist: List{Enabled: true, Names: []string{"pig.json"}}, FolderWhitelist: List{Enabled: true, Names: []string{"entity"}}},
			path:  "entity/pig.json",
			want:  false,
		},
		{
			name:  "folder whitelist matches any segment",
			rules: Rules{FileBlacklist: List{Enabled: true}, FolderWhitelist: List{Enabled: true, Names: []string{"entity"}}},
			path:  "rp/entity/mobs/pig.json",
			want:  true,
		},
		{
			name:  "folder whitelist miss",
			rules: Rules{FileBlacklist: List{Enabled: true}, FolderWhitelist: List{Enabled: true, Names: []string{"entity"}}},
			path:  "rp/ui/hud.json",
			want:  false,
		},
		{
			name:  "nothing enabled allows",
			rules: Rules{},
			path:  "anything/at/all.json",
			want:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.rules.Decide(tt.path))
		})
	}
}

func TestSplitPath(t *testing.T) {
	dirs, base := SplitPath("./a//b/c.json")
	assert.Equal(t, []string{"a", "b"}, dirs)
	assert.Equal(t, "c.json", base)

	dirs, base = SplitPath("c.json")
	assert.Empty(t, dirs)
	assert.Equal(t, "c.json", base)

	dirs, base = SplitPath("")
	assert.Nil(t, dirs)
	assert.Equal(t, "", base)
}
