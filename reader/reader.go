// Package reader extracts the typeinfo embedded in a compiled BX module.
package reader

import (
	"github.com/bxlang/bxc/typeinfo"
	"github.com/coreos/pkg/dlopen"
)

// #include <stdlib.h>
import "C"

func ReadTypeInfo(from string) (string, error) {
	handle, err := dlopen.GetHandle([]string{from})
	if err != nil {
		return "", err
	}
	defer handle.Close()

	sym, err := handle.GetSymbolPointer(typeinfo.GlobalName)
	if err != nil {
		return "", err
	}

	str := C.GoString((*C.char)(sym))
	return str, nil
}

// Read loads and decodes the typeinfo of the shared object at path.
func Read(path string) (typeinfo.Info, error) {
	data, err := ReadTypeInfo(path)
	if err != nil {
		return typeinfo.Info{}, err
	}
	return typeinfo.Decode(data)
}
