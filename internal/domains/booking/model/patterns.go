package model

import "regexp"

var (
	moneyPattern   = regexp.MustCompile(`^\d+(\.\d{1,2})?$`)
	counterPattern = regexp.MustCompile(`^\d+$`)
)
