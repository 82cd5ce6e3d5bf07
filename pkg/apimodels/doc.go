// Package apimodels is the typed object model for platform API objects.
//
// A Schema holds Class descriptors. Each class is either an item class, a
// record with named attributes, or a list class, an ordered collection of
// items (or scalars) that may carry attributes of its own. Attributes are
// simple (string, int or float) or complex (another class in the schema,
// referred to by name).
//
// Instances are *Item and *List. Every assignment is coerced to the declared
// type:
//
//	user, _ := schema.MustClass("User").NewItem(map[string]any{"id": "1"})
//	user.Get("id")             // int64(1)
//	user.Set("roles", []any{}) // builds a UserRoleList
//	user.Set("name", []any{})  // *AttrTypeError
//
// Assigning a scalar to an attribute the class does not declare infers a type
// for that attribute on that instance only and records an
// *AttrUndefinedWarning; assigning a map, slice or model to one returns an
// *AttrUndefinedError. Assigning nil always unsets the attribute.
//
// Serialize turns an instance back into the nested maps and slices used on
// the wire, optionally wrapped in the class API name and, for lists, the item
// attribute. MarshalJSON produces the same tree with keys in declaration
// order.
package apimodels
