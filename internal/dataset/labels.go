package dataset

import (
	"encoding/json"
	"os"
	"strconv"
)

// LabelIndex maps label folder names to dense integer class ids and back.
// Ids are positions in the sorted label list, so they are stable only for
// one scan of one dataset.
type LabelIndex struct {
	NameToID map[string]int
	IDToName []string
}

// NewLabelIndex builds the two inverse mappings from an already-sorted
// label list.
func NewLabelIndex(labels []string) LabelIndex {
	idx := LabelIndex{
		NameToID: make(map[string]int, len(labels)),
		IDToName: make([]string, len(labels)),
	}
	for i, name := range labels {
		idx.NameToID[name] = i
		idx.IDToName[i] = name
	}
	return idx
}

// Len returns the number of labels.
func (ix LabelIndex) Len() int { return len(ix.IDToName) }

// WriteMapping writes the id → name mapping as indented JSON, e.g.
// {"0": "ab12", "1": "cd34"}. This is the label_mapping.json side file
// consumers use to resolve class ids back to folder names.
func (ix LabelIndex) WriteMapping(path string) error {
	m := make(map[string]string, len(ix.IDToName))
	for id, name := range ix.IDToName {
		m[strconv.Itoa(id)] = name
	}
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}
