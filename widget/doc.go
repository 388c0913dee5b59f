// Package widget implements the core of arbor: a tree of widgets, the
// dispatcher that routes input events into it, and the message stack that
// carries typed messages back up.
//
// A dispatch cycle handles one event:
//
//   - The dispatcher picks a target: the deepest widget under the pointer
//     (later siblings are on top), the focused widget for keys, or the
//     widget named by the event.
//   - The target's HandleEvent runs. If it reports Unused, the event is
//     offered to each ancestor in turn until one uses it.
//   - Any widget may Push a message while handling. Messages are offered to
//     the ancestors of the widget that pushed them, parent first, through
//     HandleMessages and TryPop.
//   - Messages still on the stack at the root go to the AppData handler;
//     whatever is left after that is logged and discarded.
//
// The stack never outlives the cycle and a message can be popped at most
// once.
package widget
