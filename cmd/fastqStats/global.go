package main

var (
	TitleSummary []string
)

// mate labels, R1 first
var mateLabel = []string{"R1", "R2"}
