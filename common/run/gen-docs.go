package run

import (
	"bytes"
	"fmt"
	"io"

	"github.com/botlabs-gg/yagmod/common/config"
)

// GenConfigDocs writes a markdown list of every registered option and its environment variable
func GenConfigDocs(w io.Writer) {
	writeConfigDocs(w, config.Singleton.SortedOptions())
}

func writeConfigDocs(w io.Writer, options []*config.ConfigOption) {
	var out bytes.Buffer

	for _, v := range options {
		out.WriteString("**" + v.Description + "**")

		typeStr := ""
		def := ""
		switch t := v.DefaultValue.(type) {
		case string:
			typeStr = "string"
			def = t
		case bool:
			typeStr = "true/false"
			def = "true"
			if !t {
				def = "false"
			}
		case int, int64, float64:
			typeStr = "number"
			def = fmt.Sprint(t)
		}

		if typeStr != "" {
			out.WriteString(" (" + typeStr)
			if def != "" {
				out.WriteString(", default: " + def)
			}
			out.WriteString(")")
		}
		out.WriteString("\n")

		out.WriteString(config.EnvKey(v.Name) + "\n\n")
	}

	w.Write(out.Bytes())
}
