//go:build rp2040 || rp2350

package main

import (
	"bytes"
	"machine"
)

// flagMagic marks a pending maintenance request in flash
var flagMagic = []byte("MNT1")

// flashFlag keeps the one-boot maintenance flag in the last erase block
// of the flash data area
type flashFlag struct{}

func (flashFlag) block() (offset, index int64) {
	size := machine.Flash.EraseBlockSize()
	index = machine.Flash.Size()/size - 1
	return index * size, index
}

// Set requests maintenance mode on the next boot
func (f flashFlag) Set() error {
	offset, index := f.block()
	if err := machine.Flash.EraseBlocks(index, 1); err != nil {
		return err
	}

	buf := bytes.Repeat([]byte{0xff}, int(machine.Flash.WriteBlockSize()))
	copy(buf, flagMagic)
	_, err := machine.Flash.WriteAt(buf, offset)
	return err
}

// Consume reports whether the flag was set and erases it
func (f flashFlag) Consume() (bool, error) {
	offset, index := f.block()
	buf := make([]byte, len(flagMagic))
	if _, err := machine.Flash.ReadAt(buf, offset); err != nil {
		return false, err
	}
	if !bytes.Equal(buf, flagMagic) {
		return false, nil
	}
	return true, machine.Flash.EraseBlocks(index, 1)
}
