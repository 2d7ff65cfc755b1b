package dxf

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Summary describes the entities found in a DXF document.
type Summary struct {
	Version  string
	Layers   []string
	Entities map[string]map[string]int // layer -> entity type -> count
	Texts    map[string][]string       // layer -> text values in order
	Vertices map[string]int            // layer -> polyline vertex count
}

// Count returns the number of entities of the given type on layer.
func (s Summary) Count(layer, entity string) int {
	return s.Entities[layer][entity]
}

// Summarize reads the group-code pairs of an ASCII DXF document and tallies
// its layers and entities.
func Summarize(r io.Reader) (Summary, error) {
	s := Summary{
		Entities: make(map[string]map[string]int),
		Texts:    make(map[string][]string),
		Vertices: make(map[string]int),
	}

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)

	var (
		section, table string
		entity, layer  string
		text           string
		prevVar        string
		seenEOF        bool
	)
	flush := func() {
		if section != "ENTITIES" || entity == "" {
			return
		}
		switch entity {
		case "VERTEX":
			s.Vertices[layer]++
			return
		case "SEQEND":
			return
		case "TEXT":
			s.Texts[layer] = append(s.Texts[layer], text)
		}
		if s.Entities[layer] == nil {
			s.Entities[layer] = make(map[string]int)
		}
		s.Entities[layer][entity]++
	}

	for {
		code, value, ok, err := nextPair(sc)
		if err != nil {
			return s, err
		}
		if !ok {
			break
		}

		if code == 0 {
			flush()
			entity, layer, text = "", "", ""
			switch value {
			case "EOF":
				seenEOF = true
			case "ENDSEC":
				section = ""
			case "ENDTAB":
				table = ""
			case "SECTION", "TABLE":
			default:
				entity = value
			}
			continue
		}

		switch {
		case code == 2 && entity == "" && section == "" && table == "":
			section = value
		case code == 2 && entity == "" && section == "TABLES":
			table = value
		case code == 2 && entity == "LAYER":
			s.Layers = append(s.Layers, value)
		case code == 9:
			prevVar = value
		case code == 1 && section == "HEADER" && prevVar == "$ACADVER":
			s.Version = value
		case code == 8:
			layer = value
		case code == 1 && entity == "TEXT":
			text = value
		}
	}

	if !seenEOF {
		return s, fmt.Errorf("dxf: missing EOF marker")
	}
	return s, nil
}

// SummarizeBytes is Summarize over an in-memory document.
func SummarizeBytes(data []byte) (Summary, error) {
	return Summarize(bytes.NewReader(data))
}

func nextPair(sc *bufio.Scanner) (int, string, bool, error) {
	if !sc.Scan() {
		return 0, "", false, sc.Err()
	}
	code, err := strconv.Atoi(strings.TrimSpace(sc.Text()))
	if err != nil {
		return 0, "", false, fmt.Errorf("dxf: bad group code %q", sc.Text())
	}
	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return 0, "", false, err
		}
		return 0, "", false, fmt.Errorf("dxf: group %d has no value", code)
	}
	return code, sc.Text(), true, nil
}
