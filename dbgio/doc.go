// Package dbgio multiplexes debug console I/O across interchangeable
// byte-oriented device handlers.
//
// # Overview
//
// A Console owns an ordered registry of Handler implementations and
// forwards all reads and writes to exactly one of them, the active
// handler. Handlers wrap whatever can carry debug traffic: an
// interactive terminal, an arbitrary reader/writer pair, an in-memory
// buffer for tests, or a sink that discards everything.
//
// # Selection
//
// The active handler is chosen one of two ways. Select activates a
// handler by name, initializing it before the swap so a failed
// initialization leaves the previous selection untouched. Init walks
// the registry in order, activating the first handler that both
// detects its device and initializes cleanly; on success it also
// enables the console. Select never changes the enabled state, which
// lets a program stage a handler swap while output stays off.
//
// # Gating
//
// Every I/O call checks the enabled flag first and fails with
// ErrDisabled while the console is off. Disabling is the cheap way to
// silence debug output globally without tearing the handler down.
//
// # Usage
//
//	con := dbgio.NewConsole(dbgio.NewTerm(), dbgio.NewStream(os.Stderr, nil), dbgio.Null())
//	if err := con.Init(); err != nil {
//		// no device present at all
//	}
//	con.Printf("boot: %d banks\n", n)
//
// The null handler detects unconditionally, so registering it last
// guarantees Init succeeds and output is swallowed when nothing real
// is attached.
//
// # Related Packages
//
// Package dbglog layers structured logging on top of a Console.
package dbgio
