package jsonstore

import (
	"io"
	"os"
)

// syncWorker owns the store's open file descriptor and a reusable
// serialization buffer. It runs for the lifetime of the process and is
// never joined or cancelled; a flush signaled immediately before
// process exit may be lost.
type syncWorker struct {
	store *Store
	file  *os.File
	buf   []byte
}

// run waits for dirty signals and flushes the current document. A
// failed flush is logged and the worker simply waits for the next
// signal; the document stays dirty until a later flush succeeds.
func (w *syncWorker) run() {
	for range w.store.dirty {
		w.store.log.Debug("syncing document to file", "path", w.store.path)

		if err := w.write(); err != nil {
			w.store.log.Error("failed to write document to file",
				"path", w.store.path, "error", err)
		}
	}
}

// write overwrites the backing file with the current document. The
// serialize step briefly holds the read lock; the file I/O does not.
func (w *syncWorker) write() error {
	w.buf = append(w.buf[:0], w.store.snapshot()...)

	if _, err := w.file.Seek(0, io.SeekStart); err != nil {
		return err
	}
	if err := w.file.Truncate(0); err != nil {
		return err
	}
	_, err := w.file.Write(w.buf)
	return err
}
