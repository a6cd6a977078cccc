package config

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// FileConfig is a parsed section-based configuration file: "[section]"
// headers followed by "option = value" lines, grounded on
// original_source/src/FileTools/ConfigFile/ConfigFileReader.cpp.
type FileConfig struct {
	sections map[string]map[string]string
}

// ReadFile parses a section-based config file from r. Blank lines and
// lines starting with '#' are ignored. A line of the form "[name]"
// opens a new section; every other non-blank line must be
// "option = value" and belongs to the most recently opened section.
// Duplicate sections, duplicate options within a section, and an
// option appearing before any section header are all errors.
func ReadFile(r io.Reader) (*FileConfig, error) {
	cfg := &FileConfig{sections: make(map[string]map[string]string)}

	scanner := bufio.NewScanner(r)
	section := ""
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if strings.HasPrefix(line, "[") || strings.HasSuffix(line, "]") {
			if !strings.HasPrefix(line, "[") || !strings.HasSuffix(line, "]") {
				return nil, fmt.Errorf("config: line %d: malformed section header %q", lineNo, line)
			}
			name := strings.TrimSuffix(strings.TrimPrefix(line, "["), "]")
			if strings.Contains(name, " ") {
				return nil, fmt.Errorf("config: line %d: section header %q must not contain spaces", lineNo, line)
			}
			if _, ok := cfg.sections[name]; ok {
				return nil, fmt.Errorf("config: line %d: section %q defined more than once", lineNo, name)
			}
			cfg.sections[name] = make(map[string]string)
			section = name
			continue
		}

		first := strings.IndexByte(line, '=')
		last := strings.LastIndexByte(line, '=')
		if first == -1 || first != last {
			return nil, fmt.Errorf("config: line %d: malformed option line %q, want exactly one '='", lineNo, line)
		}
		option := strings.TrimSpace(line[:first])
		value := strings.TrimSpace(line[first+1:])
		if section == "" {
			return nil, fmt.Errorf("config: line %d: option %q appears before any section header", lineNo, option)
		}
		if _, ok := cfg.sections[section][option]; ok {
			return nil, fmt.Errorf("config: line %d: option %q defined more than once in section %q", lineNo, option, section)
		}
		cfg.sections[section][option] = value
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// HasSection reports whether section exists.
func (c *FileConfig) HasSection(section string) bool {
	_, ok := c.sections[section]
	return ok
}

// HasOption reports whether section has option set.
func (c *FileConfig) HasOption(section, option string) bool {
	opts, ok := c.sections[section]
	if !ok {
		return false
	}
	_, ok = opts[option]
	return ok
}

func (c *FileConfig) lookup(section, option string) (string, error) {
	opts, ok := c.sections[section]
	if !ok {
		return "", fmt.Errorf("config: no such section %q", section)
	}
	v, ok := opts[option]
	if !ok {
		return "", fmt.Errorf("config: no such option %q in section %q", option, section)
	}
	return v, nil
}

// String returns the raw string value of section/option.
func (c *FileConfig) String(section, option string) (string, error) {
	return c.lookup(section, option)
}

// Int parses section/option as an int.
func (c *FileConfig) Int(section, option string) (int, error) {
	v, err := c.lookup(section, option)
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(v)
}

// Float parses section/option as a float64.
func (c *FileConfig) Float(section, option string) (float64, error) {
	v, err := c.lookup(section, option)
	if err != nil {
		return 0, err
	}
	return strconv.ParseFloat(v, 64)
}

// Bool parses section/option, accepting 0/1, true/false, True/False,
// on/off and On/Off (case-sensitive otherwise, matching stobool in the
// original reader).
func (c *FileConfig) Bool(section, option string) (bool, error) {
	v, err := c.lookup(section, option)
	if err != nil {
		return false, err
	}
	switch v {
	case "0", "False", "false", "Off", "off":
		return false, nil
	case "1", "True", "true", "On", "on":
		return true, nil
	}
	return false, fmt.Errorf("config: cannot convert %q to bool in %s/%s", v, section, option)
}
