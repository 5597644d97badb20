package internal

// DependencyLink ties one Cell (dependency) to one Effect (subscriber).
// It sits in the cell's subscriber list and in the effect's dependency map,
// so either side can drop it in O(1).
type DependencyLink struct {
	dep *Cell
	sub *Effect

	prevSub *DependencyLink
	nextSub *DependencyLink
}

func (c *Cell) addSubLink(link *DependencyLink) {
	if c.subsHead == nil {
		c.subsHead = link
		link.prevSub = link // loop to self
		link.nextSub = nil
	} else {
		tail := c.subsHead.prevSub
		tail.nextSub = link
		link.prevSub = tail
		link.nextSub = nil
		c.subsHead.prevSub = link
	}
	c.subCount++
}

func (c *Cell) removeSubLink(link *DependencyLink) {
	head := c.subsHead
	if head == nil {
		return
	}

	// single link
	if head == link && link.nextSub == nil {
		c.subsHead = nil
	} else {
		if link == head {
			c.subsHead = link.nextSub
		} else {
			link.prevSub.nextSub = link.nextSub
		}

		next := link.nextSub
		if next == nil {
			next = c.subsHead
		}
		next.prevSub = link.prevSub
	}

	link.prevSub = link
	link.nextSub = nil
	c.subCount--
}
