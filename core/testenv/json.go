package testenv

import (
	"bufio"
	"encoding/json"
	"strings"
)

// DecodeJSONLines decodes newline-delimited JSON values from command output.
// Blank lines are skipped. Error causes panic.
func DecodeJSONLines[T any](output string) (list []T) {
	scanner := bufio.NewScanner(strings.NewReader(output))
	scanner.Buffer(nil, 1<<24)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var value T
		if e := json.Unmarshal([]byte(line), &value); e != nil {
			panic(e)
		}
		list = append(list, value)
	}
	if e := scanner.Err(); e != nil {
		panic(e)
	}
	return list
}
