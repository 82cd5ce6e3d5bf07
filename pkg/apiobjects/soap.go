package apiobjects

import (
	"github.com/hashicorp-forge/tansdk/pkg/apimodels"
	"github.com/hashicorp/go-hclog"
)

// SOAP result grids use terse element names (cs/c, rs/r, wh/dn/rt, h). The
// aliases give them the names the REST dialect uses.

func soapDefs() []def {
	return []def{
		{
			apiName: "column",
			attrs: attrs(
				intAttr("wh"),
				strAttr("dn"),
				intAttr("rt"),
			),
			aliases:  map[string]string{"hash": "wh", "name": "dn", "type": "rt"},
			str:      []string{"dn", "rt"},
			itemAttr: "c",
		},
		{
			apiName: "row",
			attrs: attrs(
				intAttr("id", "cid"),
				one(cls("c", "RowColumnList")),
			),
			aliases:  map[string]string{"columns": "c"},
			str:      []string{"id", "cid"},
			itemAttr: "r",
		},
		{
			apiName: "row_value",
			attrs: attrs(
				intAttr("h"),
				strAttr("text"),
			),
			aliases:    map[string]string{"hash": "h", "value": "text"},
			str:        []string{"text"},
			scalarAttr: "text",
			noList:     true,
		},
		{
			apiName: "result_set",
			attrs: attrs(
				resultSetScalars,
				one(cls("cs", "ColumnList")),
				one(cls("rs", "RowList")),
			),
			aliases:   map[string]string{"columns": "cs", "rows": "rs"},
			str:       []string{"id", "question_id", "row_count"},
			listAttrs: strAttr("now"),
		},
		{
			apiName: "merged_result_set",
			attrs: attrs(
				resultSetScalars,
				one(cls("cs", "ColumnList")),
				one(cls("rs", "RowList")),
				one(cls("result_infos", "ResultInfoList")),
			),
			aliases: map[string]string{"columns": "cs", "rows": "rs"},
			str:     []string{"id", "row_count"},
			noList:  true,
		},
		{
			apiName:   "result_info",
			attrs:     resultSetScalars,
			str:       []string{"id", "question_id", "row_count"},
			listAttrs: strAttr("now"),
		},
		{
			apiName: "audit_log",
			attrs: attrs(
				intAttr("id"),
				strAttr("type"),
				one(cls("entries", "AuditDataList")),
			),
			str: []string{"id", "type"},
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

func soapLists() []listDef {
	return []listDef{
		{
			name:      "RowColumn",
			apiName:   "row_column",
			itemAttr:  "v",
			itemClass: "RowValue",
		},
		{
			name:      "RowColumnList",
			apiName:   "row_columns",
			itemAttr:  "c",
			itemClass: "RowColumn",
		},
	}
}

func buildSoap(log hclog.Logger) *apimodels.Schema {
	return buildSchema(log, append(commonDefs(), soapDefs()...), append(commonLists(), soapLists()...))
}
