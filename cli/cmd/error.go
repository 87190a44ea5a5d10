package cmd

import "github.com/ardnew/ilc/il"

var (
	ErrYAMLMarshal = il.NewError("marshal YAML")
	ErrWriteConfig = il.NewError("write configuration file")
	ErrFileExists  = il.NewError("file exists (use --force to overwrite)")
	ErrPrelude     = il.NewError("cannot load prelude")
	ErrCompile     = il.NewError("compile failed")
	ErrWriteOutput = il.NewError("cannot write output")
)
