package unresolved

import "fmt"

// memberId formats the canonical identifier for a member: metadata
// identity is by token, but a token of 0 (accessor methods built
// without one, or synthesized members) falls back to name-based
// identity so accessor Methods still satisfy Entity.
func memberId(token uint32, name string) string {
	if token != 0 {
		return fmt.Sprintf("member:0x%08x", token)
	}
	return "member:" + name
}

// TypeId formats the canonical identifier for a type definition.
func TypeId(token uint32, fullName string) string {
	if token != 0 {
		return fmt.Sprintf("type:0x%08x", token)
	}
	return "type:" + fullName
}
