package main

import (
	"io"

	"github.com/dogmatiq/bitmatch/marshaler"
	"github.com/gocarina/gocsv"
	"google.golang.org/protobuf/types/known/structpb"
)

// reportRow is a single row of the report produced by the match command.
type reportRow struct {
	Query string `csv:"query" json:"query"`
	File  string `csv:"file" json:"file"`
	Match bool   `csv:"match" json:"match"`
	Code  string `csv:"code" json:"code"`
}

// reportWriters maps each machine-readable report format to the function that
// writes it.
var reportWriters = map[string]func(io.Writer, []reportRow) error{
	"csv":   writeCSV,
	"json":  writeJSON,
	"proto": writeProto,
}

var (
	jsonReport  = marshaler.NewJSON[[]reportRow]()
	protoReport = marshaler.NewProto[*structpb.ListValue]()
)

func writeCSV(w io.Writer, rows []reportRow) error {
	return gocsv.Marshal(rows, w)
}

func writeJSON(w io.Writer, rows []reportRow) error {
	if rows == nil {
		rows = []reportRow{}
	}

	data, err := jsonReport.Marshal(rows)
	if err != nil {
		return err
	}

	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}

// writeProto writes the report as a binary google.protobuf.ListValue with one
// google.protobuf.Struct per row.
func writeProto(w io.Writer, rows []reportRow) error {
	list, err := toListValue(rows)
	if err != nil {
		return err
	}

	data, err := protoReport.Marshal(list)
	if err != nil {
		return err
	}

	_, err = w.Write(data)
	return err
}

func toListValue(rows []reportRow) (*structpb.ListValue, error) {
	values := make([]any, 0, len(rows))

	for _, r := range rows {
		values = append(values, map[string]any{
			"query": r.Query,
			"file":  r.File,
			"match": r.Match,
			"code":  r.Code,
		})
	}

	return structpb.NewList(values)
}
