// Package monitoring turns a running simulation into a small web server so
// that long runs can be inspected from a browser. The endpoints are
// best-effort snapshots; they never feed back into the virtual-time loop.
package monitoring

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"runtime/pprof"
	"strconv"
	"time"

	// Enable profiling
	_ "net/http/pprof"

	"github.com/google/pprof/profile"
	"github.com/gorilla/mux"
	"github.com/pkg/browser"
	"github.com/shirou/gopsutil/process"
	"github.com/syifan/goseth"

	"github.com/sarchlab/devs/sim"
)

// Monitor exposes a simulation over HTTP.
type Monitor struct {
	calendar   *sim.Calendar
	root       sim.Model
	portNumber int
}

// NewMonitor creates a new Monitor.
func NewMonitor() *Monitor {
	return &Monitor{}
}

// WithPortNumber sets the port the server listens on. Ports below 1000 are
// replaced with a random one.
func (m *Monitor) WithPortNumber(portNumber int) *Monitor {
	if portNumber < 1000 {
		fmt.Fprintf(os.Stderr,
			"Port number %d is not allowed for the monitoring server. "+
				"Using a random port instead.\n", portNumber)
		portNumber = 0
	}

	m.portNumber = portNumber

	return m
}

// RegisterSimulator registers the simulation to be monitored.
func (m *Monitor) RegisterSimulator(s *sim.Simulator) {
	m.calendar = s.Calendar()
	m.root = s.Model()
}

// StartServer starts serving in the background and returns the URL it
// listens on.
func (m *Monitor) StartServer(openBrowser bool) string {
	r := mux.NewRouter()
	r.HandleFunc("/api/now", m.now)
	r.HandleFunc("/api/list_models", m.listModels)
	r.HandleFunc("/api/model/{name}", m.modelDetails)
	r.HandleFunc("/api/resource", m.listResources)
	r.HandleFunc("/api/profile", m.collectProfile)

	actualPort := ":0"
	if m.portNumber >= 1000 {
		actualPort = ":" + strconv.Itoa(m.portNumber)
	}

	listener, err := net.Listen("tcp", actualPort)
	dieOnErr(err)

	url := fmt.Sprintf("http://localhost:%d",
		listener.Addr().(*net.TCPAddr).Port)
	fmt.Fprintf(os.Stderr, "Monitoring simulation with %s\n", url)

	go func() {
		dieOnErr(http.Serve(listener, r))
	}()

	if openBrowser {
		_ = browser.OpenURL(url)
	}

	return url
}

func (m *Monitor) now(w http.ResponseWriter, _ *http.Request) {
	fmt.Fprintf(w, "{\"now\":%.10f,\"end\":%.10f}",
		m.calendar.CurrentTime(), m.calendar.EndTime())
}

func (m *Monitor) listModels(w http.ResponseWriter, _ *http.Request) {
	names := []string{}
	collectModelNames(m.root, &names)

	bytes, err := json.Marshal(names)
	dieOnErr(err)

	_, err = w.Write(bytes)
	dieOnErr(err)
}

func (m *Monitor) modelDetails(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	model := findModel(m.root, name)
	if model == nil {
		w.WriteHeader(http.StatusNotFound)
		_, err := w.Write([]byte("Model not found"))
		dieOnErr(err)
		return
	}

	serializer := goseth.NewSerializer()
	serializer.SetRoot(model)
	serializer.SetMaxDepth(1)
	dieOnErr(serializer.Serialize(w))
}

type resourceRsp struct {
	CPUPercent float64 `json:"cpu_percent"`
	MemorySize uint64  `json:"memory_size"`
}

func (m *Monitor) listResources(w http.ResponseWriter, _ *http.Request) {
	proc, err := process.NewProcess(int32(os.Getpid()))
	dieOnErr(err)

	cpuPercent, err := proc.CPUPercent()
	dieOnErr(err)

	memoryInfo, err := proc.MemoryInfo()
	dieOnErr(err)

	rsp := resourceRsp{
		CPUPercent: cpuPercent,
		MemorySize: memoryInfo.RSS,
	}

	bytes, err := json.Marshal(rsp)
	dieOnErr(err)

	_, err = w.Write(bytes)
	dieOnErr(err)
}

func (m *Monitor) collectProfile(w http.ResponseWriter, _ *http.Request) {
	buf := bytes.NewBuffer(nil)

	dieOnErr(pprof.StartCPUProfile(buf))
	time.Sleep(time.Second)
	pprof.StopCPUProfile()

	prof, err := profile.ParseData(buf.Bytes())
	dieOnErr(err)

	bytes, err := json.Marshal(prof)
	dieOnErr(err)

	_, err = w.Write(bytes)
	dieOnErr(err)
}

func collectModelNames(m sim.Model, names *[]string) {
	*names = append(*names, m.Name())

	components, ok := m.Components()
	if !ok {
		return
	}

	for _, child := range components {
		collectModelNames(child, names)
	}
}

func findModel(m sim.Model, name string) sim.Model {
	if m.Name() == name {
		return m
	}

	components, ok := m.Components()
	if !ok {
		return nil
	}

	for _, child := range components {
		if found := findModel(child, name); found != nil {
			return found
		}
	}

	return nil
}

func dieOnErr(err error) {
	if err != nil {
		log.Panic(err)
	}
}
