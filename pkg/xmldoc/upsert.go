package xmldoc

import "github.com/beevik/etree"

// FindOrCreateChild returns the first existing child of parent with the
// given tag, creating and appending an empty one when none exists. With
// multiple same-tag siblings the first match wins; no disambiguation is
// attempted.
func FindOrCreateChild(parent *etree.Element, tag string) *etree.Element {
	if child := parent.SelectElement(tag); child != nil {
		return child
	}
	return parent.CreateElement(tag)
}

// AppendChildText unconditionally appends a new child with the given tag
// and text. Calling it twice on the same parent produces two same-tag
// siblings; use SetChildText when one element must hold the value.
func AppendChildText(parent *etree.Element, tag, text string) *etree.Element {
	child := parent.CreateElement(tag)
	child.SetText(text)
	return child
}

// SetChildText finds or creates the child with the given tag and
// overwrites its text. Repeated calls converge on a single element
// holding the latest value.
func SetChildText(parent *etree.Element, tag, text string) *etree.Element {
	child := FindOrCreateChild(parent, tag)
	child.SetText(text)
	return child
}
