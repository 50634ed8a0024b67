package logging

// Field names shared by every component so that log output stays filterable.
const (
	FieldFile       = "file_path"
	FieldInputFile  = "input_file"
	FieldOutputDir  = "output_dir"
	FieldOutputFile = "output_file"
	FieldComponent  = "component"
	FieldOperation  = "operation"
	FieldValidator  = "validator"
	FieldCategory   = "category"
	FieldColumn     = "column"
	FieldCount      = "count"
	FieldExpected   = "expected"
	FieldRunID      = "run_id"
	FieldDelimiter  = "delimiter"
	FieldDuration   = "duration_ms"
	FieldError      = "error"
)
