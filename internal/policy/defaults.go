package policy

// Definition files the game resolves by fixed name; renaming them breaks a pack.
var defaultRenameFileBlacklist = []string{
	"manifest.json",
	"_ui_defs.json",
	"_global_variables.json",
	"blocks.json",
	"sounds.json",
	"sound_definitions.json",
	"music_definitions.json",
	"terrain_texture.json",
	"item_texture.json",
	"flipbook_textures.json",
	"languages.json",
	"biomes_client.json",
	"contents.json",
	"textures_list.json",
}

// Folders whose files are discovered by directory scan rather than by path.
var defaultRenameFolderWhitelist = []string{
	"entity",
	"entities",
	"animations",
	"animation_controllers",
	"attachables",
	"items",
	"loot_tables",
	"recipes",
	"spawn_rules",
	"trading",
	"particles",
	"render_controllers",
	"feature_rules",
	"features",
}

var defaultEncryptFileBlacklist = []string{"manifest.json"}

var defaultEncryptFolderBlacklist = []string{"render_controllers", "particles"}

// Default returns the built-in selection policy. Every call returns fresh
// slices so callers may modify the result.
func Default() Config {
	return Config{
		Rename: Rules{
			FileBlacklist:   List{Enabled: true, Names: clone(defaultRenameFileBlacklist)},
			FolderBlacklist: List{},
			FileWhitelist:   List{},
			FolderWhitelist: List{Enabled: true, Names: clone(defaultRenameFolderWhitelist)},
		},
		Encrypt: Rules{
			FileBlacklist:   List{Enabled: true, Names: clone(defaultEncryptFileBlacklist)},
			FolderBlacklist: List{Enabled: true, Names: clone(defaultEncryptFolderBlacklist)},
			FileWhitelist:   List{},
			FolderWhitelist: List{},
		},
	}
}

func clone(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	return out
}
