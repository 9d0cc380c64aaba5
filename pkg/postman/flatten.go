package postman

// Flatten walks the collection tree depth-first and returns every request
// paired with its folder path, in document order. The walk uses an explicit
// stack so arbitrarily deep collections cannot exhaust the call stack.
func Flatten(col *Collection) []FlattenedRequest {
	type frame struct {
		item    Item
		folders []string
	}

	var out []FlattenedRequest
	stack := make([]frame, 0, len(col.Items))

	// Push top-level items in reverse so pops come back in document order.
	for i := len(col.Items) - 1; i >= 0; i-- {
		stack = append(stack, frame{item: col.Items[i]})
	}

	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if f.item.IsFolder() {
			folders := append(append([]string{}, f.folders...), f.item.Name)
			for i := len(f.item.Items) - 1; i >= 0; i-- {
				stack = append(stack, frame{item: f.item.Items[i], folders: folders})
			}
			continue
		}

		out = append(out, FlattenedRequest{
			Name:    f.item.Name,
			Folders: f.folders,
			Request: *f.item.Request,
		})
	}
	return out
}
