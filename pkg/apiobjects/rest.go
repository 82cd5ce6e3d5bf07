package apiobjects

import (
	"github.com/hashicorp-forge/tansdk/pkg/apimodels"
	"github.com/hashicorp/go-hclog"
)

func restDefs() []def {
	return []def{
		{
			apiName: "column",
			attrs: attrs(
				intAttr("hash"),
				strAttr("name"),
				intAttr("type"),
			),
			str: []string{"name", "type"},
		},
		{
			apiName: "row",
			attrs: attrs(
				intAttr("id", "cid"),
				one(cls("data", "RowColumnList")),
			),
			aliases: map[string]string{"columns": "data"},
			str:     []string{"id", "cid"},
		},
		{
			apiName: "row_value",
			attrs: attrs(
				intAttr("hash"),
				strAttr("text"),
			),
			aliases:    map[string]string{"value": "text"},
			str:        []string{"text"},
			scalarAttr: "text",
			noList:     true,
		},
		{
			apiName: "result_set",
			attrs: attrs(
				resultSetScalars,
				one(cls("columns", "ColumnList")),
				one(cls("rows", "RowList")),
			),
			str:       []string{"id", "question_id", "row_count"},
			itemAttr:  "result_sets",
			listAttrs: strAttr("now", "max_available_age"),
		},
		{
			apiName: "merged_result_set",
			attrs: attrs(
				resultSetScalars,
				one(cls("columns", "ColumnList")),
				one(cls("rows", "RowList")),
				one(cls("result_infos", "ResultInfoList")),
			),
			str:    []string{"id", "row_count"},
			noList: true,
		},
		{
			apiName:   "result_info",
			attrs:     resultSetScalars,
			str:       []string{"id", "question_id", "row_count"},
			itemAttr:  "result_infos",
			listAttrs: strAttr("now", "max_available_age"),
		},
		{
			apiName: "audit_log",
			attrs: attrs(
				intAttr("id"),
				strAttr("type"),
				one(cls("entries", "AuditDataList")),
			),
			str:      []string{"id", "type"},
			itemAttr: "entries",
		},
		{
			apiName: "parse_result_group",
			attrs: attrs(
				intAttr("score"),
				strAttr("question_text", "parameter_definition"),
				one(cls("question", "Question")),
				one(cls("question_group_sensors", "SensorList")),
			),
			str: []string{"question_text", "score"},
		},
		{
			apiName: "parse_question_result",
			attrs: attrs(
				intAttr("from_canonical_text", "score"),
				strAttr("question_text"),
				one(cls("selects", "SelectList")),
				one(cls("group", "Group")),
			),
			str: []string{"question_text", "from_canonical_text"},
		},
	}
}

func restLists() []listDef {
	return []listDef{
		{
			name:      "RowColumn",
			apiName:   "row_column",
			itemAttr:  "value",
			itemClass: "RowValue",
		},
		{
			name:      "RowColumnList",
			apiName:   "row_columns",
			itemAttr:  "data",
			itemClass: "RowColumn",
		},
	}
}

func buildRest(log hclog.Logger) *apimodels.Schema {
	return buildSchema(log, append(commonDefs(), restDefs()...), append(commonLists(), restLists()...))
}
