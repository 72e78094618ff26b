package gen

import (
	"fmt"

	"github.com/xlab/treeprint"

	"github.com/oisee/gbopgen/pkg/inst"
)

// Tree lays stubs out as space / block / family / handler.
func Tree(stubs []Stub) treeprint.Tree {
	root := treeprint.New()
	root.SetValue("handlers")

	spaces := map[inst.Space]treeprint.Tree{}
	blocks := map[string]treeprint.Tree{}
	families := map[string]treeprint.Tree{}
	for _, s := range stubs {
		sp, ok := spaces[s.Space]
		if !ok {
			sp = root.AddBranch(s.Space.String())
			spaces[s.Space] = sp
		}
		b, _ := inst.BlockOf(s.Space, s.Slot)
		bk := s.Space.String() + "/" + b.Name
		bt, ok := blocks[bk]
		if !ok {
			bt = sp.AddMetaBranch(fmt.Sprintf("base 0x%02x", b.Base), b.Name)
			blocks[bk] = bt
		}
		fk := bk + "/" + s.Family.Name
		if s.Family.Kind == inst.KindMove {
			fk += "/" + s.Dst.Name()
		}
		ft, ok := families[fk]
		if !ok {
			label := s.Family.Name
			if s.Family.Kind == inst.KindMove {
				label += " " + s.Dst.Mnemonic()
			}
			ft = bt.AddBranch(label)
			families[fk] = ft
		}
		ft.AddMetaNode(s.Opcode(), s.Name)
	}
	return root
}
