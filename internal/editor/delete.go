package editor

import "formbench/internal/model"

// DeleteAt returns list without the element at index. Out of range leaves the list as is.
func DeleteAt(list model.Form, index int) (model.Form, error) {
	if !list.Valid(index) {
		return list.Clone(), IndexError{Op: "delete", Index: index, Len: len(list)}
	}
	out := make(model.Form, 0, len(list)-1)
	out = append(out, list[:index]...)
	out = append(out, list[index+1:]...)
	return out, nil
}
