// helper.go --  This file is part of goHF project.
// Mirzaeva Irina, 2023
//
//	goHF is distributed in the hope that it will be useful,
//	but WITHOUT ANY WARRANTY; without even the implied warranty
//	of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
//	See the GNU General Public License for more details.
//
//	You should have received a copy of the GNU General Public License
//	along with this program.  If not, see http://www.gnu.org/licenses/
//
// ------------------------------------------------
package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/mat"
)

func ReadLines(r io.Reader) ([]string, error) {
	var result []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		result = append(result, scanner.Text())
	}
	return result, scanner.Err()
}

// TxtFileFromDense writes M row by row, preceded by a commented header
// line naming the columns.
func TxtFileFromDense(M mat.Matrix, header []string, fname string) error {
	var sb strings.Builder
	if len(header) > 0 {
		sb.WriteString("#")
		for _, h := range header {
			fmt.Fprintf(&sb, " %14s", h)
		}
		sb.WriteString("\n")
	}
	r, c := M.Dims()
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			fmt.Fprintf(&sb, " % 14.8e", M.At(i, j))
		}
		sb.WriteString("\n")
	}
	return os.WriteFile(fname, []byte(sb.String()), 0644)
}

// withSuffix inserts suffix before the first extension of the file name,
// "Ne_orbs.dat.zst" -> "Ne_orbs_a.dat.zst".
func withSuffix(fname, suffix string) string {
	dir, base := "", fname
	if i := strings.LastIndex(fname, "/"); i >= 0 {
		dir, base = fname[:i+1], fname[i+1:]
	}
	if i := strings.Index(base, "."); i > 0 {
		return dir + base[:i] + suffix + base[i:]
	}
	return dir + base + suffix
}

func memDebug(log *zap.Logger) {
	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)
	log.Debug("memory",
		zap.Uint64("alloc", memStats.Alloc),
		zap.Uint64("total_alloc", memStats.TotalAlloc),
		zap.Uint64("heap_alloc", memStats.HeapAlloc),
		zap.Uint64("heap_sys", memStats.HeapSys))
}
