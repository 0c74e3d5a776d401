package index

import "github.com/itzwaris/minsql/errs"

// Order is the maximum number of keys a B-tree node holds before it is
// split. A node is split preemptively, before it would ever need to
// hold more than Order keys, so no node ever actually reaches Order+1.
const Order = 128

type btreeNode struct {
	isLeaf   bool
	keys     [][]byte
	values   []uint64   // meaningful only when isLeaf
	children []*btreeNode // meaningful only when !isLeaf
}

func newBtreeNode(leaf bool) *btreeNode {
	return &btreeNode{isLeaf: leaf}
}

// Btree is an in-memory B-tree index. It has no lock of its own and is
// not safe for concurrent use; callers that share one across goroutines
// must serialize access themselves.
type Btree struct {
	root *btreeNode
}

// NewBtree returns an empty B-tree with a single empty leaf as root.
func NewBtree() *Btree {
	return &Btree{root: newBtreeNode(true)}
}

// Insert adds or — if key is already present — overwrites key's value.
// The tree preemptively splits any node it would otherwise overfill on
// the way down, so a single top-down pass suffices; there is never a
// second pass back up to rebalance.
func (t *Btree) Insert(key []byte, value uint64) error {
	root := t.root
	if len(root.keys) == Order {
		newRoot := newBtreeNode(false)
		newRoot.children = []*btreeNode{root}
		splitChild(newRoot, 0)
		t.root = newRoot
		insertNonFull(newRoot, key, value)
	} else {
		insertNonFull(root, key, value)
	}
	return nil
}

// splitChild splits the full child of parent at the given index into
// two nodes, promoting the child's median key into parent. A leaf split
// copies the median key (and its value) up into the right sibling
// rather than removing it, since the parent's key slot carries no
// value of its own — losing the only copy would make that key
// unsearchable. An internal split has no values to preserve, so the
// median is pushed up and removed from both halves as usual; it
// remains searchable because it was itself copied up from a leaf.
func splitChild(parent *btreeNode, index int) {
	full := parent.children[index]
	sibling := newBtreeNode(full.isLeaf)

	mid := Order / 2
	medianKey := full.keys[mid]

	if full.isLeaf {
		sibling.keys = append(sibling.keys, full.keys[mid:]...)
		sibling.values = append(sibling.values, full.values[mid:]...)
		full.keys = full.keys[:mid]
		full.values = full.values[:mid]
	} else {
		sibling.keys = append(sibling.keys, full.keys[mid+1:]...)
		sibling.children = append(sibling.children, full.children[mid+1:]...)
		full.keys = full.keys[:mid]
		full.children = full.children[:mid+1]
	}

	parent.children = append(parent.children, nil)
	copy(parent.children[index+2:], parent.children[index+1:])
	parent.children[index+1] = sibling

	parent.keys = append(parent.keys, nil)
	copy(parent.keys[index+1:], parent.keys[index:])
	parent.keys[index] = medianKey
}

// insertNonFull inserts into a subtree rooted at node, which must not
// already be full. It splits a full child before descending into it.
func insertNonFull(node *btreeNode, key []byte, value uint64) {
	if node.isLeaf {
		for i, k := range node.keys {
			if compareKeys(key, k) == 0 {
				node.values[i] = value
				return
			}
		}

		i := len(node.keys) - 1
		for i >= 0 && compareKeys(key, node.keys[i]) < 0 {
			i--
		}

		node.keys = append(node.keys, nil)
		node.values = append(node.values, 0)
		copy(node.keys[i+2:], node.keys[i+1:])
		copy(node.values[i+2:], node.values[i+1:])
		node.keys[i+1] = key
		node.values[i+1] = value
		return
	}

	i := len(node.keys) - 1
	for i >= 0 && compareKeys(key, node.keys[i]) < 0 {
		i--
	}
	i++

	if len(node.children[i].keys) == Order {
		splitChild(node, i)
		// Equality routes right, matching Search and the copy-up split:
		// the promoted key's value now lives in the right-hand sibling.
		if compareKeys(key, node.keys[i]) >= 0 {
			i++
		}
	}

	insertNonFull(node.children[i], key, value)
}

// Search reports whether key is present and, if so, its value.
func (t *Btree) Search(key []byte) (uint64, bool) {
	node := t.root
	for node != nil {
		i := 0
		for i < len(node.keys) && compareKeys(key, node.keys[i]) > 0 {
			i++
		}
		if i < len(node.keys) && compareKeys(key, node.keys[i]) == 0 {
			if node.isLeaf {
				return node.values[i], true
			}
			node = node.children[i+1]
		} else {
			if node.isLeaf {
				return 0, false
			}
			node = node.children[i]
		}
	}
	return 0, false
}

// Delete is not supported: the B-tree does not implement key removal or
// rebalancing. Callers that need to remove an indexed key must drop and
// rebuild the index instead.
func (t *Btree) Delete(key []byte) error {
	return errs.Wrap(errs.ErrUsage, "btree index does not support delete")
}
