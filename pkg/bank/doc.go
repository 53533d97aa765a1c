/*
Package bank provides a high-level API for assembling sound RAM banks.

It ties the lower layers together: samples are staged with snd/sample,
placed by the snd/mem allocator, and their bytes land in a snd/region
backing image.

# Quick Start

Build a bank in memory:

	b, err := bank.New(region.NewBuffer(mem.RegionSize), nil)
	if err != nil {
	    log.Fatal(err)
	}

	s, _ := sample.Load("kick.wav")
	entry, err := b.Add(s)
	if err != nil {
	    log.Fatal(err)
	}
	fmt.Printf("%s at %#x\n", entry.Name, entry.Offset)

# Backing Choices

Anything satisfying region.Region can back a bank. Use region.Create
to build a file-backed RAM image whose dirty pages are synced on
Close:

	img, _ := region.Create("aica.img", mem.RegionSize)
	b, _ := bank.New(img, nil)
	// ... Add samples ...
	b.Close(ctx)
	img.Close()

# Layout

The low 64 KiB of the region is reserved by default: that is where the
driver binary and channel registers live on the hardware this models.
Override with Options.Reserve when building images for other layouts.

# Limits

Placement is first-come: removing entries leaves free holes that later
adds fill best-fit. There is no compaction; rebuild the bank if
fragmentation wins.
*/
package bank
