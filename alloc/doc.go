// Package alloc implements a tiered general-purpose memory allocator: six
// segregated fixed-size pools for small requests, one coalescing arena for
// medium requests, and direct OS reservations for anything larger than the
// configured threshold.
//
// # Overview
//
// Every request enters the dispatcher, which rounds the size up to 8 bytes
// and routes by size:
//
//   - sizes up to the largest class go to the smallest pool whose block
//     size fits; a full pool falls through to the arena
//   - sizes up to the OS threshold are carved from the arena with a
//     first-fit search, splitting off the remainder when it can hold a
//     header and at least one alignment unit of payload
//   - larger sizes are delegated to the OS page facade directly
//
// Free takes the bare payload and recovers the owning tier by address
// range: pool ranges first, then the arena range, then the OS block list.
// Freeing a pointer the allocator never issued is a silent no-op.
//
// # Usage Example
//
//	a := alloc.New(nil) // DefaultConfig
//	if err := a.Init(); err != nil {
//	    return err
//	}
//
//	p, err := a.Alloc(40)
//	if err != nil {
//	    return err
//	}
//
//	// Write payload bytes...
//	copy(p, data)
//
//	a.Free(p)
//	a.Destroy()
//
// # Size Classes
//
// The default layout keeps six pools of ten blocks each:
//
//	16, 32, 64, 128, 256, 512 bytes
//
// plus a 4 KiB arena and a 10 MiB OS threshold. Alternate layouts are
// expressed through Config and can be loaded from YAML.
//
// # Intrusive Metadata
//
// Pool free lists and arena block lists live inside the managed regions
// themselves: a free slot's first eight bytes hold the offset of the next
// free slot, and every arena block is preceded by a 16-byte header whose
// size word's sign marks the block in use. All header arithmetic funnels
// through a single payload/block translation helper pair.
//
// # Lifecycle
//
// The lifecycle is strictly Init → (Alloc | Free | DumpStats |
// DumpBlocks)* → Destroy. Double-init, use-before-init, use-after-destroy,
// and destroy-without-init are programmer bugs and panic with a
// diagnostic. Resource exhaustion is recoverable and surfaces as a nil
// payload with ErrNoSpace or ErrOSUnavailable.
//
// # Thread Safety
//
// Allocator instances are not thread-safe. All operations are synchronous
// and must be serialized by the caller.
package alloc
