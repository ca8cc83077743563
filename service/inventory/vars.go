package inventory

import (
	"os"
	"regexp"
	"strings"

	"github.com/giantswarm/microerror"
	"sigs.k8s.io/yaml"
)

var (
	simpleVarPattern = regexp.MustCompile(`\{\{(\w+?)\}\}`)
	indexVarPattern  = regexp.MustCompile(`\[(\w+)\]`)
	dottedVarPattern = regexp.MustCompile(`\{\{([\w.]+?)\}\}`)
)

// ResolveResourceGroup reads the variables file and resolves the value at
// keyPath, e.g. "common.rg", expanding templated references in three passes:
// simple {{name}} references to top level variables, [name] index references
// that splice in a variable as a dotted path segment, and finally dotted
// {{a.b.c}} references walking nested variables. So with region "aus" and
// project "dev", "rg-{{region}}{{env.hyphen[project]}}api" resolves through
// "rg-aus{{env.hyphen.dev}}api" to e.g. "rg-aus-dev-api".
func ResolveResourceGroup(varsFile, keyPath string) (string, error) {
	raw, err := os.ReadFile(varsFile)
	if err != nil {
		return "", microerror.Mask(err)
	}

	var vars map[string]interface{}
	err = yaml.Unmarshal(raw, &vars)
	if err != nil {
		return "", microerror.Mask(err)
	}

	value, err := lookup(vars, keyPath)
	if err != nil {
		return "", microerror.Mask(err)
	}

	for _, name := range captures(simpleVarPattern, value) {
		replacement, err := lookup(vars, name)
		if err != nil {
			return "", microerror.Mask(err)
		}
		value = strings.ReplaceAll(value, "{{"+name+"}}", replacement)
	}

	for _, name := range captures(indexVarPattern, value) {
		replacement, err := lookup(vars, name)
		if err != nil {
			return "", microerror.Mask(err)
		}
		value = strings.ReplaceAll(value, "["+name+"]", "."+replacement)
	}

	for _, path := range captures(dottedVarPattern, value) {
		replacement, err := lookup(vars, path)
		if err != nil {
			return "", microerror.Mask(err)
		}
		value = strings.ReplaceAll(value, "{{"+path+"}}", replacement)
	}

	return value, nil
}

func captures(pattern *regexp.Regexp, s string) []string {
	var names []string
	for _, match := range pattern.FindAllStringSubmatch(s, -1) {
		names = append(names, match[1])
	}
	return names
}

// lookup walks the nested variables along a dot separated path and returns
// the string value at the end of it.
func lookup(vars map[string]interface{}, path string) (string, error) {
	var current interface{} = vars
	for _, segment := range strings.Split(path, ".") {
		m, ok := current.(map[string]interface{})
		if !ok {
			return "", microerror.Maskf(invalidVarsError, "variable path %#q does not resolve to a value", path)
		}
		current, ok = m[segment]
		if !ok {
			return "", microerror.Maskf(invalidVarsError, "variable path %#q is not defined", path)
		}
	}

	s, ok := current.(string)
	if !ok {
		return "", microerror.Maskf(invalidVarsError, "variable path %#q does not resolve to a string", path)
	}

	return s, nil
}
