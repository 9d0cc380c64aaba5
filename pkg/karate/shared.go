package karate

import (
	"fmt"
	"sort"
	"strings"
	"unicode"
)

// defaultEnvironments seeds karate-config.js when no environment files are
// configured.
var defaultEnvironments = map[string]map[string]string{
	"dev":     {"baseUrl": "http://localhost:8080"},
	"staging": {"baseUrl": "https://staging-api.example.com"},
	"prod":    {"baseUrl": "https://api.example.com"},
}

// addSharedArtifacts renders the artifacts emitted once per conversion:
// karate-config.js, TestRunner.java, the common-steps feature, and the suite
// README. They are deterministic regardless of generation strategy.
func addSharedArtifacts(b *Bundle, collectionName string, envs map[string]map[string]string, requestCount int) {
	b.Add(ConfigPath, renderConfig(envs))
	b.Add(RunnerPath, renderRunner(collectionName))
	b.Add(CommonFeaturePath, commonFeature)
	b.Add(ReadmePath, renderReadme(collectionName, requestCount))
}

// renderConfig emits karate-config.js with one branch per environment.
// Environments are emitted in sorted name order so output is stable.
func renderConfig(envs map[string]map[string]string) string {
	if len(envs) == 0 {
		envs = defaultEnvironments
	}

	names := make([]string, 0, len(envs))
	for name := range envs {
		names = append(names, name)
	}
	sort.Strings(names)

	defaultEnv := names[0]
	if _, ok := envs["dev"]; ok {
		defaultEnv = "dev"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "function fn() {\n")
	fmt.Fprintf(&sb, "  var env = karate.env || '%s';\n", defaultEnv)
	fmt.Fprintf(&sb, "  var config = {\n")
	fmt.Fprintf(&sb, "    baseUrl: '%s',\n", envBaseURL(envs[defaultEnv]))
	fmt.Fprintf(&sb, "    timeout: 10000\n")
	fmt.Fprintf(&sb, "  };\n\n")
	for i, name := range names {
		keyword := "if"
		if i > 0 {
			keyword = "} else if"
		}
		fmt.Fprintf(&sb, "  %s (env === '%s') {\n", keyword, name)
		vars := envs[name]
		keys := make([]string, 0, len(vars))
		for k := range vars {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(&sb, "    config.%s = '%s';\n", k, vars[k])
		}
	}
	fmt.Fprintf(&sb, "  }\n\n")
	fmt.Fprintf(&sb, "  karate.configure('connectTimeout', config.timeout);\n")
	fmt.Fprintf(&sb, "  karate.configure('readTimeout', config.timeout);\n")
	fmt.Fprintf(&sb, "  return config;\n")
	fmt.Fprintf(&sb, "}\n")
	return sb.String()
}

func envBaseURL(vars map[string]string) string {
	if url, ok := vars["baseUrl"]; ok {
		return url
	}
	return "http://localhost:8080"
}

// renderRunner emits the JUnit 5 runner, its class name derived from the
// collection name.
func renderRunner(collectionName string) string {
	return fmt.Sprintf(`import com.intuit.karate.junit5.Karate;

public class %s {

    @Karate.Test
    Karate testAll() {
        return Karate.run().relativeTo(getClass());
    }
}
`, runnerClassName(collectionName))
}

// runnerClassName strips the collection name down to a valid Java identifier
// and appends TestRunner.
func runnerClassName(collectionName string) string {
	var sb strings.Builder
	upper := true
	for _, r := range collectionName {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			upper = true
			continue
		}
		if upper {
			sb.WriteRune(unicode.ToUpper(r))
			upper = false
		} else {
			sb.WriteRune(r)
		}
	}
	name := sb.String()
	if name == "" || unicode.IsDigit(rune(name[0])) {
		name = "Collection" + name
	}
	return name + "TestRunner"
}

const commonFeature = `@ignore
Feature: Common steps shared across generated scenarios

Scenario: expect success
  * def expectSuccess =
    """
    function(status) {
      return status >= 200 && status < 300;
    }
    """
`

func renderReadme(collectionName string, requestCount int) string {
	return fmt.Sprintf(`# Karate test suite: %s

Generated from a Postman collection (%d request scenarios).

## Layout

- karate-config.js   environment configuration (select with -Dkarate.env=<name>)
- TestRunner.java    JUnit 5 entry point
- features/          one .feature file per request, plus common.feature

## Running

Place the files in a Maven or Gradle project with the karate-junit5
dependency, then:

    mvn test -Dkarate.env=dev
`, collectionName, requestCount)
}
