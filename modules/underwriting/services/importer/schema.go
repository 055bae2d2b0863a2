package importer

import "fmt"

// ValidateSchema checks that every required sheet exists and carries every
// required column. It deliberately runs to completion instead of failing on
// the first problem, so one upload round-trip surfaces the full list of
// missing sheets and columns.
func ValidateSchema(wb *Workbook, specs []SheetSpec) error {
	var problems []string

	for _, spec := range specs {
		if !wb.HasSheet(spec.Name) {
			problems = append(problems, fmt.Sprintf("missing sheet %s", spec.Name))
			continue
		}

		headers, err := wb.Headers(spec.Name)
		if err != nil {
			return err
		}
		if len(headers) == 0 {
			problems = append(problems, fmt.Sprintf("sheet %s is empty", spec.Name))
			continue
		}

		present := make(map[string]struct{}, len(headers))
		for _, h := range headers {
			present[h] = struct{}{}
		}
		for _, required := range spec.Required {
			if _, ok := present[required]; !ok {
				problems = append(problems, fmt.Sprintf("sheet %s: missing column %s", spec.Name, required))
			}
		}
	}

	if len(problems) > 0 {
		return NewStructuralError("workbook does not match template", problems...)
	}
	return nil
}
