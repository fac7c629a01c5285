package main

import "github.com/rxtech-lab/argo-dataset/internal/dataset"

// TableLoadedMsg carries a labeled table read from disk.
type TableLoadedMsg struct {
	Path  string
	Table *dataset.Table
}

// LoadErrorMsg indicates the selected file could not be read.
type LoadErrorMsg struct {
	Path string
	Err  error
}
