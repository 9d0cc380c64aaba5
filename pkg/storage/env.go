// Package storage loads environment definition files that feed the generated
// karate-config.js.
package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// varPattern matches {{VAR_NAME}} or {{env:VAR_NAME}}
var varPattern = regexp.MustCompile(`\{\{([^}]+)\}\}`)

// LoadEnvironments reads every *.yaml / *.yml file in dir into a
// name -> variables map, keyed by the file's base name. A missing directory
// is not an error; the generator falls back to built-in defaults.
func LoadEnvironments(dir string) (map[string]map[string]string, error) {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return map[string]map[string]string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read environments directory: %w", err)
	}

	envs := make(map[string]map[string]string)
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || (!strings.HasSuffix(name, ".yaml") && !strings.HasSuffix(name, ".yml")) {
			continue
		}
		env, err := loadEnvironment(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		key := strings.TrimSuffix(strings.TrimSuffix(name, ".yaml"), ".yml")
		envs[key] = env
	}
	return envs, nil
}

// loadEnvironment loads one environment file and resolves {{env:VAR}}
// references against the process environment.
func loadEnvironment(filePath string) (map[string]string, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read environment file: %w", err)
	}

	var env map[string]string
	if err := yaml.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("failed to parse environment YAML %s: %w", filepath.Base(filePath), err)
	}

	for key, value := range env {
		env[key] = resolveEnvRefs(value)
	}
	return env, nil
}

// resolveEnvRefs resolves {{env:VAR}} references in a string. Plain {{VAR}}
// placeholders are left untouched; those belong to the generated suite.
func resolveEnvRefs(text string) string {
	return varPattern.ReplaceAllStringFunc(text, func(match string) string {
		varName := strings.TrimPrefix(strings.TrimSuffix(match, "}}"), "{{")
		varName = strings.TrimSpace(varName)

		if strings.HasPrefix(varName, "env:") {
			sysVar := strings.TrimPrefix(varName, "env:")
			if val := os.Getenv(sysVar); val != "" {
				return val
			}
		}
		return match
	})
}
