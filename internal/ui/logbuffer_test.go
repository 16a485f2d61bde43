package ui

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogBufferEvictsOldestAtCap(t *testing.T) {
	b := NewLogBuffer(10000)

	for i := 0; i < 10050; i++ {
		b.Append(fmt.Sprintf("line-%d", i))
	}

	require.Equal(t, 10000, b.Len())
	lines := b.Lines()
	assert.Equal(t, "line-50", lines[0])
	assert.Equal(t, "line-10049", lines[9999])

	// Relative order preserved throughout.
	for i, line := range lines {
		assert.Equal(t, fmt.Sprintf("line-%d", i+50), line)
	}
}

func TestLogBufferClear(t *testing.T) {
	b := NewLogBuffer(100)
	b.Append("one")
	b.Append("two")
	require.Equal(t, 2, b.Len())

	b.Clear()
	assert.Equal(t, 0, b.Len())
	assert.Empty(t, b.Lines())
}

func TestScrollClamping(t *testing.T) {
	m := testModel()
	m.height = 26 // page height 20
	for i := 0; i < 100; i++ {
		m.logs.Append(fmt.Sprintf("line-%d", i))
	}

	// Page down never passes len - page.
	for i := 0; i < 20; i++ {
		m.logPageDown()
	}
	assert.Equal(t, 80, m.logScroll)

	// Page up never goes below zero.
	for i := 0; i < 20; i++ {
		m.logPageUp()
	}
	assert.Equal(t, 0, m.logScroll)

	m.logScrollToBottom()
	assert.Equal(t, 80, m.logScroll)
}

func TestScrollClampWithShortBuffer(t *testing.T) {
	m := testModel()
	m.height = 26
	m.logs.Append("only line")

	m.logPageDown()
	assert.Equal(t, 0, m.logScroll)

	m.logScrollToBottom()
	assert.Equal(t, 0, m.logScroll)
}
