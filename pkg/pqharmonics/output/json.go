// Package output renders extraction results: JSON, highlighted excelize
// workbooks, violation CSVs and workbook read-back.
package output

import "encoding/json"

// ToJSON serializes v, indented when pretty is set.
func ToJSON(v interface{}, pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(v, "", "  ")
	}
	return json.Marshal(v)
}
