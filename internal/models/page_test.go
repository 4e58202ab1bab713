package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPageMeta(t *testing.T) {
	p := PageParams{Page: 2, Limit: 20}

	assert.Equal(t, PageMeta{Page: 2, Limit: 20, Total: 0, Pages: 0}, NewPageMeta(p, 0))
	assert.Equal(t, 1, NewPageMeta(p, 1).Pages)
	assert.Equal(t, 1, NewPageMeta(p, 20).Pages)
	assert.Equal(t, 2, NewPageMeta(p, 21).Pages)
	assert.Equal(t, 5, NewPageMeta(p, 100).Pages)
}

func TestPageParamsOffset(t *testing.T) {
	assert.Equal(t, 0, PageParams{Page: 1, Limit: 20}.Offset())
	assert.Equal(t, 40, PageParams{Page: 3, Limit: 20}.Offset())
}
