package objects

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
)

// BaseObject implements the tree bookkeeping shared by all game objects.
// Concrete objects embed it and override the lifecycle methods they need.
type BaseObject struct {
	id          string
	zIndex      int
	parent      GameObject
	children    *childSet
	initialized bool
}

type NewBaseObjectOpts struct {
	// ZIndex orders siblings when drawn by a SortedZIndexObject.
	ZIndex int
}

var _ GameObject = &BaseObject{}

func NewBaseObject(id string, opts *NewBaseObjectOpts) *BaseObject {
	o := &BaseObject{
		id:       id,
		children: newChildSet(),
	}
	if opts != nil {
		o.zIndex = opts.ZIndex
	}
	return o
}

func (o *BaseObject) GetID() string {
	return o.id
}

func (o *BaseObject) GetZIndex() int {
	return o.zIndex
}

func (o *BaseObject) GetParent() GameObject {
	return o.parent
}

func (o *BaseObject) SetParent(parent GameObject) {
	o.parent = parent
}

func (o *BaseObject) GetChildren() []GameObject {
	return o.children.ordered
}

func (o *BaseObject) AddChild(id string, child GameObject) error {
	if _, ok := o.children.idxIDObjects[id]; ok {
		return fmt.Errorf("child object with id %s already exists", id)
	}
	if o.initialized {
		if err := InitTree(child); err != nil {
			return fmt.Errorf("failed to initialize child object tree: %v", err)
		}
	}
	o.children.Add(id, child)
	child.SetParent(o)
	return nil
}

func (o *BaseObject) RemoveChild(id string) error {
	child := o.children.Get(id)
	if child == nil {
		return fmt.Errorf("child object with id %s does not exist", id)
	}
	if err := DestroyTree(child); err != nil {
		return fmt.Errorf("failed to destroy child object tree: %v", err)
	}
	o.children.Remove(id)
	child.SetParent(nil)
	return nil
}

func (o *BaseObject) IsInitialized() bool {
	return o.initialized
}

func (o *BaseObject) Init() error {
	o.initialized = true
	return nil
}

func (o *BaseObject) Destroy() error {
	o.initialized = false
	return nil
}

func (o *BaseObject) Update() error {
	return nil
}

func (o *BaseObject) Draw(screen *ebiten.Image) {}

type childSet struct {
	idxIDObjects map[string]GameObject
	ordered      []GameObject
}

func newChildSet() *childSet {
	return &childSet{
		idxIDObjects: make(map[string]GameObject),
		ordered:      make([]GameObject, 0),
	}
}

func (c *childSet) Add(id string, obj GameObject) {
	c.idxIDObjects[id] = obj
	c.ordered = append(c.ordered, obj)
}

func (c *childSet) Get(id string) GameObject {
	return c.idxIDObjects[id]
}

func (c *childSet) Remove(id string) {
	obj, ok := c.idxIDObjects[id]
	if !ok {
		return
	}
	delete(c.idxIDObjects, id)
	for i, o := range c.ordered {
		if o == obj {
			c.ordered = append(c.ordered[:i], c.ordered[i+1:]...)
			return
		}
	}
}
