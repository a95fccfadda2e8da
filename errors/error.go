// Package errors provides errors that remember where in a document or
// object graph they happened.
package errors

import (
	"fmt"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/goccy/go-yaml/ast"
	"github.com/goccy/go-yaml/printer"
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"github.com/zoncoen/query-go"
)

func New(message string) error {
	return errors.New(message)
}

func Errorf(format string, args ...any) error {
	return errors.Errorf(format, args...)
}

// ErrorPathf returns an error located at path, a dot separated selector
// relative to the document root.
func ErrorPathf(path, format string, args ...any) error {
	return &PathError{
		Path: selector(path),
		Err:  errors.Errorf(format, args...),
	}
}

func ErrorQueryf(q *query.Query, format string, args ...any) error {
	return &PathError{
		Path: q.String(),
		Err:  errors.Errorf(format, args...),
	}
}

// Errors bundles several errors into one.
func Errors(errs ...error) error {
	var filtered []error
	for _, err := range errs {
		if err != nil {
			filtered = append(filtered, err)
		}
	}
	switch len(filtered) {
	case 0:
		return nil
	case 1:
		return filtered[0]
	}
	return &MultiPathError{Errs: filtered}
}

func Wrap(err error, message string) error {
	return Wrapf(err, "%s", message)
}

func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	if e, ok := err.(Error); ok {
		e.Wrapf(format, args...)
		return e
	}
	return &PathError{
		Err: errors.Wrapf(err, format, args...),
	}
}

// WithPath prepends path to the location of err.
func WithPath(err error, path string) error {
	if err == nil {
		return nil
	}
	if e, ok := err.(Error); ok {
		e.AppendPath(selector(path))
		return e
	}
	return &PathError{
		Err:  err,
		Path: selector(path),
	}
}

// WithNode attaches the document the path of err refers to.
func WithNode(err error, node ast.Node) error {
	if e, ok := err.(Error); ok {
		e.SetNode(node)
		return e
	}
	return err
}

func selector(path string) string {
	if path == "" || strings.HasPrefix(path, "[") {
		return path
	}
	return "." + path
}

type Error interface {
	AppendPath(string)
	Wrapf(string, ...any)
	SetNode(ast.Node)
	Error() string
}

type PathError struct {
	Path string
	Node ast.Node
	Err  error
}

func (e *PathError) AppendPath(path string) {
	e.Path = path + e.Path
}

func (e *PathError) Wrapf(message string, args ...any) {
	e.Err = errors.Wrapf(e.Err, message, args...)
}

func (e *PathError) SetNode(node ast.Node) {
	e.Node = node
}

func (e *PathError) Unwrap() error {
	return e.Err
}

// yml returns the annotated source of the node at e.Path.
func (e *PathError) yml() string {
	if e.Node == nil || e.Path == "" {
		return ""
	}
	path, err := yaml.PathString("$" + e.Path)
	if path == nil || err != nil {
		return ""
	}
	node, err := path.FilterNode(e.Node)
	if node == nil || err != nil {
		return ""
	}
	var p printer.Printer
	return p.PrintErrorToken(node.GetToken(), false)
}

func (e *PathError) Error() string {
	msg := e.Err.Error()
	if e.Path != "" {
		msg = fmt.Sprintf("%s: %s", e.Path, msg)
	}
	if yml := e.yml(); yml != "" {
		return fmt.Sprintf("%s\n%s", msg, yml)
	}
	return msg
}

type MultiPathError struct {
	Errs []error
	err  error
}

func (e *MultiPathError) Error() string {
	prefix := ""
	if e.err != nil {
		prefix = e.err.Error()
	}
	mulerr := &multierror.Error{
		ErrorFormat: func(es []error) string {
			points := make([]string, len(es))
			for i, err := range es {
				points[i] = "* " + strings.ReplaceAll(err.Error(), "\n", "\n  ")
			}
			return fmt.Sprintf("%d errors occurred:\n%s", len(es), strings.Join(points, "\n"))
		},
	}
	for _, err := range e.Errs {
		mulerr = multierror.Append(mulerr, errors.Errorf("%s%s", prefix, err.Error()))
	}
	return mulerr.Error()
}

func (e *MultiPathError) Unwrap() []error {
	return e.Errs
}

func (e *MultiPathError) AppendPath(path string) {
	for _, err := range e.Errs {
		if e, ok := err.(Error); ok {
			e.AppendPath(path)
		}
	}
}

func (e *MultiPathError) Wrapf(message string, args ...any) {
	if e.err == nil {
		e.err = errors.New("")
	}
	e.err = errors.Wrapf(e.err, message, args...)
}

func (e *MultiPathError) SetNode(node ast.Node) {
	for _, err := range e.Errs {
		if e, ok := err.(Error); ok {
			e.SetNode(node)
		}
	}
}
