// Package configpaths resolves candidate configuration file locations.
package configpaths

import (
	"os"
	"path/filepath"
	"strings"
)

const appDir = "gamepaduno"

// ConfigCandidatePaths returns config file candidates grouped by format, in
// load priority order. A user-supplied path is routed to the matching group
// by extension; paths with an unknown extension are tried as every format.
func ConfigCandidatePaths(userCfg string) (jsonPaths, yamlPaths, tomlPaths []string) {
	if userCfg != "" {
		switch strings.ToLower(filepath.Ext(userCfg)) {
		case ".json":
			jsonPaths = append(jsonPaths, userCfg)
		case ".yaml", ".yml":
			yamlPaths = append(yamlPaths, userCfg)
		case ".toml":
			tomlPaths = append(tomlPaths, userCfg)
		default:
			jsonPaths = append(jsonPaths, userCfg)
			yamlPaths = append(yamlPaths, userCfg)
			tomlPaths = append(tomlPaths, userCfg)
		}
	}

	var dirs []string
	if d, err := os.UserConfigDir(); err == nil {
		dirs = append(dirs, filepath.Join(d, appDir))
	}
	dirs = append(dirs, ".")

	for _, d := range dirs {
		jsonPaths = append(jsonPaths, filepath.Join(d, appDir+".json"))
		yamlPaths = append(yamlPaths,
			filepath.Join(d, appDir+".yaml"),
			filepath.Join(d, appDir+".yml"))
		tomlPaths = append(tomlPaths, filepath.Join(d, appDir+".toml"))
	}
	return jsonPaths, yamlPaths, tomlPaths
}
