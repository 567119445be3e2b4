// Package vim holds the Vim grammar pieces the key handler composes:
// operators, counts, motions, character searches and text objects.
//
// A normal mode command has the shape
//
//	[count]["register][operator][count]motion
//	[count]["register][operator][operator]   (linewise: dd, yy, cc)
//	[count]["register][operator][count]textobject
//	[count]motion
//
// Operators are identified by OperatorKind and motions by the action name
// a keymap binds them to, such as "cursor.wordForward". RangeFor turns a
// motion into the Range an operator acts on and Apply performs the
// operator on a buffer. A TextObject's Select produces a Range directly,
// and CharSearch turns f, F, t and T into motions.
//
// Examples:
//   - "5j": count=5, motion=j (move down 5 lines)
//   - "d3w": operator=d, count=3, motion=w (delete 3 words)
//   - "2d3w": counts multiply, six words are deleted
//   - `"ayw`: register=a, operator=y, motion=w (yank word to register a)
//   - "5dd": count=5, operator=d, linewise (delete 5 lines)
//   - "ci(": operator=c, text object=i( (change inside parentheses)
//   - "d2fx": operator=d, count=2, search=f x (delete through the second x)
package vim
