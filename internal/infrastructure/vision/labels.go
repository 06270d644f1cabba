package vision

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"strings"

	"zone-guard/internal/domain/entity"
)

// DefaultLabels имена классов модели best.onnx в порядке индексов
func DefaultLabels() []string {
	out := make([]string, len(entity.RecognizedLabels))
	copy(out, entity.RecognizedLabels)
	return out
}

// LoadLabels читает имена классов, по одному на строку. Пустой путь даёт DefaultLabels.
func LoadLabels(path string) ([]string, error) {
	if path == "" {
		return DefaultLabels(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read labels: %w", err)
	}

	var labels []string
	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		if l := strings.TrimSpace(sc.Text()); l != "" {
			labels = append(labels, l)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("parse labels: %w", err)
	}
	if len(labels) == 0 {
		return nil, fmt.Errorf("labels file %s is empty", path)
	}
	return labels, nil
}
