// Package card maintains the dataset card (README.md): it renders the
// dataset_info front-matter block and splices it between the literal
// "---\ndataset_info:" and "\nconfigs:" markers, appending the whole
// block when the markers are absent.
package card

import (
	"bytes"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// maxInlineLabels caps how many label names are inlined in the card; the
// full mapping lives in label_mapping.json.
const maxInlineLabels = 50

const (
	startMarker = "---\ndataset_info:"
	endMarker   = "\nconfigs:"
)

// SplitStat is the per-split summary reported in the card.
type SplitStat struct {
	Name        string
	NumBytes    int64
	NumExamples int
}

// Info holds everything the dataset_info block reports.
type Info struct {
	Labels []string    // Sorted label names; position = class id.
	Splits []SplitStat // Splits with zero examples are omitted from the card.
}

// totalBytes sums the split sizes for download_size and dataset_size.
func (in Info) totalBytes() int64 {
	var total int64
	for _, s := range in.Splits {
		total += s.NumBytes
	}
	return total
}

// Build renders the dataset_info YAML block (no leading "---" line).
func Build(in Info) (string, error) {
	root := mapping(
		scalar("dataset_info"), mapping(
			scalar("features"), features(in.Labels),
			scalar("splits"), splits(in.Splits),
			scalar("download_size"), intScalar(in.totalBytes()),
			scalar("dataset_size"), intScalar(in.totalBytes()),
		),
	)

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(root); err != nil {
		return "", err
	}
	if err := enc.Close(); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Splice replaces the dataset_info section of existing with block. When the
// markers are absent the whole content is replaced by the block followed by
// an empty configs marker, matching the append behavior for new cards.
func Splice(existing, block string) string {
	start := strings.Index(existing, startMarker)
	end := strings.Index(existing, endMarker)
	if start >= 0 && end >= 0 {
		return existing[:start] + "---\n" + block + existing[end:]
	}
	return "---\n" + block + endMarker
}

// Update rewrites the card at path with in's dataset_info block. A missing
// card is created.
func Update(path string, in Info) error {
	block, err := Build(in)
	if err != nil {
		return err
	}

	existing := ""
	if data, err := os.ReadFile(path); err == nil {
		existing = string(data)
	} else if !os.IsNotExist(err) {
		return err
	}

	return os.WriteFile(path, []byte(Splice(existing, block)), 0o644)
}

// features builds the features sequence: the image column and the
// class_label column with up to maxInlineLabels names.
func features(labels []string) *yaml.Node {
	names := &yaml.Node{Kind: yaml.MappingNode}
	for id, label := range labels {
		if id >= maxInlineLabels {
			break
		}
		key := scalar(strconv.Itoa(id))
		key.Style = yaml.SingleQuotedStyle
		val := scalar(label)
		names.Content = append(names.Content, key, val)
	}
	// The pointer to the full mapping is emitted regardless of label count
	// so card consumers always know where the authoritative list lives.
	if n := len(names.Content); n > 0 {
		names.Content[n-1].FootComment = "... additional labels truncated, see label_mapping.json for complete list"
	}

	return sequence(
		mapping(
			scalar("name"), scalar("image"),
			scalar("dtype"), scalar("image"),
		),
		mapping(
			scalar("name"), scalar("label"),
			scalar("dtype"), mapping(
				scalar("class_label"), mapping(
					scalar("names"), names,
				),
			),
		),
	)
}

// splits builds the splits sequence, omitting empty splits.
func splits(stats []SplitStat) *yaml.Node {
	seq := &yaml.Node{Kind: yaml.SequenceNode}
	for _, s := range stats {
		if s.NumExamples == 0 {
			continue
		}
		seq.Content = append(seq.Content, mapping(
			scalar("name"), scalar(s.Name),
			scalar("num_bytes"), intScalar(s.NumBytes),
			scalar("num_examples"), intScalar(int64(s.NumExamples)),
		))
	}
	return seq
}

// --- yaml.Node constructors ---

func scalar(s string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Value: s}
}

func intScalar(n int64) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.FormatInt(n, 10)}
}

func mapping(kv ...*yaml.Node) *yaml.Node {
	return &yaml.Node{Kind: yaml.MappingNode, Content: kv}
}

func sequence(items ...*yaml.Node) *yaml.Node {
	return &yaml.Node{Kind: yaml.SequenceNode, Content: items}
}
