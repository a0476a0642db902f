// SPDX-License-Identifier: MIT

package sketch_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/pdsketch/pd"
	"github.com/katalvlaran/pdsketch/sketch"
)

func collectIndices(t *testing.T, s *sketch.Sketch, opts ...sketch.SliceOption) []int {
	t.Helper()
	seq, err := s.Slice(opts...)
	require.NoError(t, err)
	var out []int
	for i, r := range seq {
		rec, err := s.Record(i)
		require.NoError(t, err)
		assert.True(t, rec.Equal(r))
		out = append(out, i)
	}

	return out
}

func TestSlice(t *testing.T) {
	s := scenario(t)

	assert.Equal(t, []int{0, 1, 2}, collectIndices(t, s, sketch.From(0), sketch.To(3)))
	assert.Equal(t, []int{1, 2}, collectIndices(t, s, sketch.From(1), sketch.To(3), sketch.By(1)))
	assert.Equal(t, []int{0, 2}, collectIndices(t, s, sketch.From(0), sketch.To(3), sketch.By(2)))
	assert.Equal(t, []int{2, 1, 0}, collectIndices(t, s, sketch.From(2), sketch.To(-1), sketch.By(-1)))
	assert.Empty(t, collectIndices(t, s, sketch.From(3), sketch.To(3)))
	assert.Empty(t, collectIndices(t, s, sketch.From(5), sketch.To(2)), "empty range ignores start")
	assert.Equal(t, 0, s.Index(), "slicing bypasses the cursor")
}

func TestSlice_Restartable(t *testing.T) {
	s := scenario(t)
	seq, err := s.Slice(sketch.From(0), sketch.To(3))
	require.NoError(t, err)

	for pass := 0; pass < 2; pass++ {
		n := 0
		for range seq {
			n++
		}
		assert.Equal(t, 3, n, "pass %d", pass)
	}

	n := 0
	for range seq {
		n++
		break
	}
	assert.Equal(t, 1, n)
}

func TestSlice_Errors(t *testing.T) {
	s := scenario(t)

	_, err := s.Slice(sketch.To(2))
	assert.ErrorIs(t, err, sketch.ErrUnboundedSlice)
	_, err = s.Slice(sketch.From(0))
	assert.ErrorIs(t, err, sketch.ErrUnboundedSlice)
	_, err = s.Slice()
	assert.ErrorIs(t, err, sketch.ErrUnboundedSlice)

	_, err = s.Slice(sketch.From(0), sketch.To(2), sketch.By(0))
	assert.ErrorIs(t, err, sketch.ErrBadStep)

	_, err = s.Slice(sketch.From(0), sketch.To(4))
	assert.ErrorIs(t, err, sketch.ErrIndexOutOfRange)
	_, err = s.Slice(sketch.From(-1), sketch.To(2))
	assert.ErrorIs(t, err, sketch.ErrIndexOutOfRange)
	_, err = s.Slice(sketch.From(3), sketch.To(0), sketch.By(-1))
	assert.ErrorIs(t, err, sketch.ErrIndexOutOfRange)
}

func TestRecords(t *testing.T) {
	s := scenario(t)
	want := scenarioRecords()

	n := 0
	for i, r := range s.Records() {
		assert.True(t, want[i].Equal(r), "record %d", i)
		n++
	}
	assert.Equal(t, 3, n)

	_, err := s.Record(3)
	assert.ErrorIs(t, err, sketch.ErrIndexOutOfRange)
}

func TestPoints(t *testing.T) {
	s := scenario(t)

	pts, err := s.Points(0)
	require.NoError(t, err)
	assert.Equal(t, []pd.Point{pd.Diagonal}, pts)

	pts, err = s.Points(2)
	require.NoError(t, err)
	assert.Equal(t, []pd.Point{pd.Diagonal, p1, p2}, pts)

	_, err = s.Points(3)
	assert.ErrorIs(t, err, sketch.ErrIndexOutOfRange)
}

func TestEqualAndHash(t *testing.T) {
	a := scenario(t)
	b := scenario(t)
	_, err := b.Mass(2)
	require.NoError(t, err)

	assert.True(t, a.Equal(b), "cursor position is not part of equality")
	assert.Equal(t, a.Hash(), b.Hash())

	recs := scenarioRecords()
	recs[2].Delta.Add(pd.P(9, 10), 0)
	c, err := sketch.FromRecords(recs)
	require.NoError(t, err)
	assert.True(t, a.Equal(c), "zero entries equal absent ones")
	assert.Equal(t, a.Hash(), c.Hash())

	recs = scenarioRecords()
	recs[2].Parent = 0
	d, err := sketch.FromRecords(recs)
	require.NoError(t, err)
	assert.False(t, a.Equal(d))
	assert.NotEqual(t, a.Hash(), d.Hash())

	recs = scenarioRecords()
	e, err := sketch.FromRecords(recs[:2])
	require.NoError(t, err)
	assert.False(t, a.Equal(e))

	var nilSketch *sketch.Sketch
	assert.False(t, a.Equal(nilSketch))
	assert.True(t, nilSketch.Equal(nil))
}

func TestValidate(t *testing.T) {
	require.NoError(t, conserved(t).Validate())

	cases := map[string]func([]sketch.Record){
		"baseline point":     func(r []sketch.Record) { r[0].Point = p1 },
		"baseline parent":    func(r []sketch.Record) { r[0].Parent = 0 },
		"baseline plan":      func(r []sketch.Record) { r[0].Delta.Add(p1, 1) },
		"duplicate point":    func(r []sketch.Record) { r[2].Point = p1 },
		"diagonal point":     func(r []sketch.Record) { r[2].Point = pd.P(2, 2) },
		"sentinel point":     func(r []sketch.Record) { r[1].Point = pd.Diagonal },
		"parent range":       func(r []sketch.Record) { r[2].Parent = 3 },
		"negative parent":    func(r []sketch.Record) { r[2].Parent = -5 },
		"forward parent":     func(r []sketch.Record) { r[1].Parent = 2 },
		"mass not conserved": func(r []sketch.Record) { r[2].Delta.Add(p2, 1) },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			recs := conservedRecords()
			mutate(recs)
			s, err := sketch.FromRecords(recs)
			require.NoError(t, err)
			assert.ErrorIs(t, s.Validate(), sketch.ErrInvariant)
		})
	}
}

func TestRecompute(t *testing.T) {
	s := scenario(t)
	for i, want := range scenarioMass() {
		got, err := s.Recompute(i)
		require.NoError(t, err)
		assert.True(t, want.Equal(got), "index %d", i)
	}
	assert.Equal(t, 0, s.Index())

	_, err := s.Recompute(5)
	assert.ErrorIs(t, err, sketch.ErrIndexOutOfRange)
}

func TestTree(t *testing.T) {
	tr, err := scenario(t).Tree()
	require.NoError(t, err)

	assert.Equal(t, 3, tr.Len())
	assert.Equal(t, []int{0}, tr.Roots())

	parent, err := tr.Parent(2)
	require.NoError(t, err)
	assert.Equal(t, 1, parent)

	kids, err := tr.Children(0)
	require.NoError(t, err)
	assert.Equal(t, []int{1}, kids)

	depth, err := tr.Depth(2)
	require.NoError(t, err)
	assert.Equal(t, 2, depth)

	path, err := tr.Path(2)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 1, 0}, path)

	_, err = tr.Depth(3)
	assert.ErrorIs(t, err, sketch.ErrIndexOutOfRange)
}

func TestTree_WalkOrderAndAbort(t *testing.T) {
	recs := []sketch.Record{
		{Point: pd.Diagonal, Parent: sketch.NoParent, Delta: pd.Plan{pd.Diagonal: 4}},
		{Point: pd.P(0, 1), Parent: 0, Delta: pd.Plan{}},
		{Point: pd.P(0, 2), Parent: 0, Delta: pd.Plan{}},
		{Point: pd.P(0, 3), Parent: 1, Delta: pd.Plan{}},
		{Point: pd.P(0, 4), Parent: sketch.NoParent, Delta: pd.Plan{}},
	}
	s, err := sketch.FromRecords(recs)
	require.NoError(t, err)
	tr, err := s.Tree()
	require.NoError(t, err)
	assert.Equal(t, []int{0, 4}, tr.Roots())

	var order, depths []int
	require.NoError(t, tr.Walk(func(i, d int) error {
		order = append(order, i)
		depths = append(depths, d)

		return nil
	}))
	assert.Equal(t, []int{0, 1, 3, 2, 4}, order)
	assert.Equal(t, []int{0, 1, 2, 1, 0}, depths)

	stop := errors.New("stop")
	visited := 0
	err = tr.Walk(func(i, _ int) error {
		visited++
		if i == 3 {
			return stop
		}

		return nil
	})
	assert.ErrorIs(t, err, stop)
	assert.Equal(t, 3, visited)
}

func TestTree_Invalid(t *testing.T) {
	forward := scenarioRecords()
	forward[1].Parent = 2
	forward[2].Parent = 0
	s, err := sketch.FromRecords(forward)
	require.NoError(t, err)
	_, err = s.Tree()
	assert.ErrorIs(t, err, sketch.ErrInvariant, "parent after child")

	cycle := scenarioRecords()
	cycle[1].Parent = 2
	cycle[2].Parent = 1
	s, err = sketch.FromRecords(cycle)
	require.NoError(t, err)
	_, err = s.Tree()
	assert.ErrorIs(t, err, sketch.ErrInvariant)

	self := scenarioRecords()
	self[2].Parent = 2
	s, err = sketch.FromRecords(self)
	require.NoError(t, err)
	_, err = s.Tree()
	assert.ErrorIs(t, err, sketch.ErrInvariant)

	far := scenarioRecords()
	far[2].Parent = 9
	s, err = sketch.FromRecords(far)
	require.NoError(t, err)
	_, err = s.Tree()
	assert.ErrorIs(t, err, sketch.ErrInvariant)
}
