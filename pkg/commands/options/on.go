package options

import (
	"github.com/spf13/cobra"
)

// OnOptions
type OnOptions struct {
	On string
}

func AddOnArgs(cmd *cobra.Command, o *OnOptions) {
	cmd.Flags().StringVar(&o.On, "on", "",
		`Specify a day, example: --on=2025-10-17, --on=tomorrow or --on=+1w. Defaults to today.`)
}

// MonthOptions
type MonthOptions struct {
	Month  string
	Layout string
}

func AddMonthArgs(cmd *cobra.Command, o *MonthOptions) {
	cmd.Flags().StringVarP(&o.Month, "month", "m", "",
		`Specify a month, example: --month=2025-10, --month=next or --month=march.`)
	cmd.Flags().StringVar(&o.Layout, "layout", "grid",
		`How to print the month: grid, compact or long.`)
}

// FilterOptions are the material view flags.
type FilterOptions struct {
	Subject string
	Type    string
	Query   string
	Sort    string
}

func AddFilterArgs(cmd *cobra.Command, o *FilterOptions) {
	cmd.Flags().StringVarP(&o.Subject, "subject", "s", "",
		"Only show materials for this subject.")
	cmd.Flags().StringVarP(&o.Type, "type", "t", "",
		"Only show materials of this type: all, pdf, docx or zip.")
	cmd.Flags().StringVarP(&o.Query, "query", "q", "",
		"Case-insensitive search over name, subject and uploader.")
	cmd.Flags().StringVar(&o.Sort, "sort", "newest",
		"Sort order: newest, oldest or name.")
}
