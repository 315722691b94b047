package iso9660

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlanEmptyRoot(t *testing.T) {
	root := &Directory{}
	root.ContinuationArea = erEntry()

	plan := Plan(root, 2, true, nil)

	require.NotZero(t, root.LBA)
	assert.Equal(t, root.LBA, plan.RootLBA)
	// root's own extent, then the CE block, both precede the total.
	assert.Greater(t, plan.TotalBlocks, root.LBA)
}

func TestPlanContinuationAreaFollowsRootExtent(t *testing.T) {
	root := &Directory{}
	root.ContinuationArea = erEntry()
	child := &Directory{Name: "SUBDIR"}
	root.addDir(child)

	Plan(root, 2, true, nil)

	ceLBA := root.LBA + root.ExtentBlocks
	assert.Equal(t, ceLBA+1, child.LBA, "first child must be placed after the reserved continuation-area block")
}

func TestPlanPathTableIndicesAreParentBeforeChild(t *testing.T) {
	root := &Directory{}
	a := &Directory{Name: "A"}
	b := &Directory{Name: "B"}
	root.addDir(a)
	root.addDir(b)
	grandchild := &Directory{Name: "C"}
	a.addDir(grandchild)

	Plan(root, 1, false, nil)

	assert.Equal(t, uint16(1), root.PathTableIndex)
	assert.Less(t, root.PathTableIndex, a.PathTableIndex)
	assert.Less(t, root.PathTableIndex, b.PathTableIndex)
	assert.Less(t, a.PathTableIndex, grandchild.PathTableIndex)
	assert.Equal(t, a.PathTableIndex, grandchild.ParentIndex)
}

func TestPlanLBAMonotonicityAmongSiblings(t *testing.T) {
	root := &Directory{}
	a := &Directory{Name: "AAA"}
	b := &Directory{Name: "BBB"}
	root.addDir(a)
	root.addDir(b)

	Plan(root, 1, false, nil)

	if a.PathTableIndex < b.PathTableIndex {
		assert.Less(t, a.LBA, b.LBA)
	} else {
		assert.Less(t, b.LBA, a.LBA)
	}
}

func TestReserveFileSpaceHasOneBlockSlack(t *testing.T) {
	root := &Directory{}
	f := &File{Name: "HELLO.TXT", Size: 3}
	root.addFile(f)

	plan := Plan(root, 1, false, nil)

	assert.Equal(t, uint32(2048), f.AlignedSize)
	// One block of payload plus one block of slack.
	assert.Equal(t, f.LBA+2, plan.TotalBlocks)
}

func TestExtentSizeInLBHandlesManyEntries(t *testing.T) {
	d := &Directory{Name: "FOO"}
	for i := 0; i < 100; i++ {
		name := string(rune('A'+i%26)) + "_a_rather_long_sixty_character_file_name_padded_out_here__.TXT"
		d.addFile(&File{Name: name, Size: 10})
	}
	blocks := extentSizeInLB(d, true)
	assert.GreaterOrEqual(t, blocks, uint32(2))
}
