package apiobjects

import "github.com/hashicorp-forge/tansdk/pkg/apimodels"

// Classes shared by both dialects. Dialect files add the result grid, audit
// and parse classes whose wire shapes differ.

var resultSetScalars = intAttr(
	"age",
	"archived_question_id",
	"cache_id",
	"error_count",
	"estimated_total",
	"expiration",
	"expire_seconds",
	"filtered_row_count",
	"filtered_row_count_machines",
	"id",
	"issue_seconds",
	"item_count",
	"mr_passed",
	"mr_tested",
	"no_results_count",
	"passed",
	"question_id",
	"report_count",
	"row_count",
	"row_count_machines",
	"saved_question_id",
	"seconds_since_issued",
	"select_count",
	"tested",
)

func commonDefs() []def {
	return []def{
		{
			apiName: "user",
			attrs: attrs(
				intAttr("id"),
				strAttr("name", "display_name", "domain"),
				intAttr("locked_out", "deleted_flag", "active_session_count", "group_id"),
				strAttr("last_login"),
				one(cls("roles", "UserRoleList")),
				one(cls("content_set_roles", "ContentSetRoleList")),
			),
			str: []string{"id", "name", "domain"},
		},
		{
			apiName: "role",
			name:    "UserRole",
			attrs: attrs(
				intAttr("id"),
				strAttr("name", "description", "reserved_name"),
			),
			str: []string{"id", "name"},
		},
		{
			apiName: "content_set_role",
			attrs: attrs(
				intAttr("id"),
				strAttr("name", "description", "reserved_name", "category"),
				intAttr("deny_flag", "all_content_sets_flag"),
			),
			str: []string{"id", "name"},
		},
		{
			apiName: "group",
			attrs: attrs(
				intAttr("id"),
				strAttr("name", "text"),
				intAttr("and_flag", "not_flag", "type", "source_id", "deleted_flag"),
				one(cls("filters", "FilterList")),
				one(cls("sub_groups", "GroupList")),
			),
			str: []string{"id", "name", "text"},
		},
		{
			apiName: "filter",
			attrs: attrs(
				intAttr("id"),
				strAttr("operator", "value_type", "value"),
				intAttr("not_flag", "all_values_flag", "ignore_case_flag", "max_age_seconds"),
				one(cls("sensor", "Sensor")),
			),
			str: []string{"operator", "value"},
		},
		{
			apiName: "sensor",
			attrs: attrs(
				intAttr("id"),
				strAttr("name"),
				intAttr("hash"),
				strAttr("category", "description", "value_type", "delimiter"),
				intAttr("source_id", "max_age_seconds", "ignore_case_flag", "hidden_flag",
					"deleted_flag", "exclude_from_parse_flag"),
			),
			str: []string{"id", "name", "hash"},
		},
		{
			apiName: "select",
			attrs: attrs(
				one(cls("sensor", "Sensor")),
				one(cls("filter", "Filter")),
			),
			str: []string{"sensor"},
		},
		{
			apiName: "question",
			attrs: attrs(
				intAttr("id"),
				strAttr("expiration", "query_text"),
				intAttr("expire_seconds", "force_computer_id_flag", "hidden_flag"),
				one(cls("selects", "SelectList")),
				one(cls("group", "Group")),
				one(cls("saved_question", "SavedQuestion")),
				one(cls("user", "User")),
			),
			str: []string{"id", "query_text"},
		},
		{
			apiName: "saved_question",
			attrs: attrs(
				intAttr("id"),
				strAttr("name", "query_text"),
				intAttr("public_flag", "hidden_flag", "issue_seconds", "expire_seconds",
					"keep_seconds", "row_count_flag", "most_recent_question_id"),
				one(cls("question", "Question")),
				one(cls("user", "User")),
			),
			str: []string{"id", "name"},
		},
		{
			apiName: "package_spec",
			attrs: attrs(
				intAttr("id"),
				strAttr("name", "display_name", "command", "source_hash"),
				intAttr("command_timeout", "expire_seconds", "hidden_flag", "deleted_flag"),
			),
			str: []string{"id", "name"},
		},
		{
			apiName: "action",
			attrs: attrs(
				intAttr("id"),
				strAttr("name", "comment", "start_time", "expiration_time", "status"),
				intAttr("stopped_flag", "expire_seconds", "distribute_seconds"),
				one(cls("package_spec", "PackageSpec")),
				one(cls("target_group", "Group")),
				one(cls("action_group", "Group")),
				one(cls("user", "User")),
				one(cls("approver", "User")),
				one(cls("saved_action", "SavedAction")),
			),
			str: []string{"id", "name", "status"},
		},
		{
			apiName: "saved_action",
			attrs: attrs(
				intAttr("id"),
				strAttr("name", "status", "start_time", "end_time"),
				intAttr("issue_seconds", "distribute_seconds", "public_flag", "approved_flag",
					"expire_seconds"),
				one(cls("package_spec", "PackageSpec")),
				one(cls("target_group", "Group")),
				one(cls("action_group", "Group")),
				one(cls("user", "User")),
				one(cls("last_action", "Action")),
			),
			str: []string{"id", "name", "status"},
		},
		{
			apiName: "parse_job",
			attrs: attrs(
				strAttr("question_text"),
				intAttr("parser_version"),
			),
			str:    []string{"question_text"},
			noList: true,
		},
		{
			apiName: "options",
			attrs: attrs(
				intAttr("export_flag", "hide_errors_flag", "include_answer_times_flag",
					"row_counts_only_flag", "suppress_object_list", "most_recent_flag",
					"return_cdata_in_xml", "cache_id", "cache_expiration", "row_start",
					"row_count", "sort_order", "flags", "include_hidden_flag"),
				strAttr("export_format", "cache_filters"),
			),
			noList: true,
		},
		{
			apiName:    "client_count",
			attrs:      intAttr("count"),
			str:        []string{"count"},
			scalarAttr: "count",
			noList:     true,
		},
		{
			apiName: "audit_data",
			attrs: attrs(
				intAttr("id", "modifier_user_id"),
				strAttr("type", "details", "creation_time", "modification_time"),
			),
			str:         []string{"id", "type", "creation_time"},
			listName:    "AuditDataList",
			listAPIName: "audit_entries",
			itemAttr:    "entry",
		},
	}
}

func commonLists() []listDef {
	return []listDef{
		{
			name:       "ComputerIdList",
			apiName:    "computer_id_list",
			itemAttr:   "id",
			itemScalar: apimodels.TypeInt,
		},
	}
}
