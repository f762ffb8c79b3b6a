package lesson

import "sort"

// unorderedRank sorts objects without an activeOrder after every ordered one.
const unorderedRank = 9999

// Rank returns the object's ordering key.
func (o Room2DObject) Rank() int {
	if o.ActiveOrder == nil {
		return unorderedRank
	}
	return *o.ActiveOrder
}

// Contains reports whether the percentage point (px, py) lies inside the
// object's bounding box. Objects with missing bounds contain nothing.
func (o Room2DObject) Contains(px, py float64) bool {
	if o.X == nil || o.Y == nil || o.W == nil || o.H == nil {
		return false
	}
	return px >= *o.X && px <= *o.X+*o.W && py >= *o.Y && py <= *o.Y+*o.H
}

// Sorted returns the room's objects by activeOrder ascending. Ties keep
// document order.
func (r *Room2DConfig) Sorted() []Room2DObject {
	if r == nil {
		return nil
	}
	objs := make([]Room2DObject, len(r.Objects))
	copy(objs, r.Objects)
	sort.SliceStable(objs, func(i, j int) bool {
		return objs[i].Rank() < objs[j].Rank()
	})
	return objs
}

// ObjectByID looks an object up by id.
func (r *Room2DConfig) ObjectByID(id string) (Room2DObject, bool) {
	if r == nil {
		return Room2DObject{}, false
	}
	for _, o := range r.Objects {
		if o.ID == id {
			return o, true
		}
	}
	return Room2DObject{}, false
}

// HitTest returns the topmost object containing the point. Later objects
// paint over earlier ones. A miss is a mis-tap.
func (r *Room2DConfig) HitTest(px, py float64) (Room2DObject, bool) {
	if r == nil {
		return Room2DObject{}, false
	}
	for i := len(r.Objects) - 1; i >= 0; i-- {
		if r.Objects[i].Contains(px, py) {
			return r.Objects[i], true
		}
	}
	return Room2DObject{}, false
}
