package getd

import (
	"bytes"
	"encoding/json"
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

//WriteJSON persists v as human-readable, UTF-8 JSON. Parent directories
//are created as needed.
func WriteJSON(path string, v interface{}) (e error) {
	buf := new(bytes.Buffer)
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if e = enc.Encode(v); e != nil {
		return errors.Wrapf(e, "failed to marshal json for %s", path)
	}
	return WriteText(path, buf.String())
}

//ReadJSON loads the JSON file at path into v.
func ReadJSON(path string, v interface{}) (e error) {
	data, e := ioutil.ReadFile(path)
	if e != nil {
		return errors.Wrapf(e, "failed to read %s", path)
	}
	if e = json.Unmarshal(data, v); e != nil {
		return errors.Wrapf(e, "failed to unmarshal json from %s", path)
	}
	return
}

//WriteText persists a textual artifact.
func WriteText(path, text string) (e error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if e = os.MkdirAll(dir, 0755); e != nil {
			return errors.Wrapf(e, "failed to create directory for %s", path)
		}
	}
	if e = ioutil.WriteFile(path, []byte(text), 0644); e != nil {
		return errors.Wrapf(e, "failed to write %s", path)
	}
	return
}
