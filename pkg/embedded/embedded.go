package embedded

import (
	_ "embed"
)

// Embed the static corpus data shipped with the binary
//
//go:embed data/progressions.json
var ProgressionsJSON []byte

//go:embed data/phrase_lexicon.json
var PhraseLexiconJSON []byte

//go:embed data/key_profiles.json
var KeyProfilesJSON []byte

//go:embed data/sections.yaml
var SectionsYAML []byte
