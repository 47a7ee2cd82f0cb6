package config

import (
	"sort"
	"strings"
)

// Snapshot is an immutable view of a Config handed to buffers and the host
// at construction time. It owns private copies of every table.
type Snapshot struct {
	tabs      map[string]TabPolicy
	suffixes  []string // longest first
	history   HistoryConfig
	highlight HighlightConfig
	clipboard ClipboardConfig
	logFile   string
	debug     bool
}

// Freeze copies cfg into a Snapshot.
func (cfg *Config) Freeze() *Snapshot {
	s := &Snapshot{
		tabs:      make(map[string]TabPolicy, len(cfg.Tabs)),
		history:   cfg.History,
		highlight: cfg.Highlight,
		clipboard: cfg.Clipboard,
		logFile:   cfg.LogFile,
		debug:     cfg.Debug,
	}
	for k, p := range cfg.Tabs {
		k = strings.ToLower(k)
		s.tabs[k] = p
		if k != DefaultTabKey {
			s.suffixes = append(s.suffixes, k)
		}
	}
	sort.Slice(s.suffixes, func(i, j int) bool {
		if len(s.suffixes[i]) != len(s.suffixes[j]) {
			return len(s.suffixes[i]) > len(s.suffixes[j])
		}
		return s.suffixes[i] < s.suffixes[j]
	})
	return s
}

// TabPolicyFor returns the policy of the longest suffix matching name,
// compared case-insensitively, or the default policy.
func (s *Snapshot) TabPolicyFor(name string) TabPolicy {
	lower := strings.ToLower(name)
	for _, suffix := range s.suffixes {
		if strings.HasSuffix(lower, suffix) {
			return s.tabs[suffix]
		}
	}
	return s.tabs[DefaultTabKey]
}

// Tabs returns a copy of the tab table.
func (s *Snapshot) Tabs() map[string]TabPolicy {
	out := make(map[string]TabPolicy, len(s.tabs))
	for k, v := range s.tabs {
		out[k] = v
	}
	return out
}

func (s *Snapshot) History() HistoryConfig     { return s.history }
func (s *Snapshot) Highlight() HighlightConfig { return s.highlight }
func (s *Snapshot) Clipboard() ClipboardConfig { return s.clipboard }
func (s *Snapshot) LogFile() string            { return s.logFile }
func (s *Snapshot) Debug() bool                { return s.debug }

// Config returns a mutable copy of the snapshot, for display.
func (s *Snapshot) Config() Config {
	return Config{
		Tabs:      s.Tabs(),
		History:   s.history,
		Highlight: s.highlight,
		Clipboard: s.clipboard,
		LogFile:   s.logFile,
		Debug:     s.debug,
	}
}
