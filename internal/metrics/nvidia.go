package metrics

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"
)

// NvidiaQueryArgs are the nvidia-smi arguments ParseNvidiaSMI expects output from.
var NvidiaQueryArgs = []string{
	"--query-gpu=index,name,memory.total,memory.free,utilization.gpu",
	"--format=csv,noheader,nounits",
}

// ParseNvidiaSMI parses GPU devices from nvidia-smi CSV output, one device per line.
// Expected input is from: nvidia-smi --query-gpu=index,name,memory.total,memory.free,utilization.gpu --format=csv,noheader,nounits
//
// Returns an empty GPUInfo if no GPU is available (empty output or a failure indicator).
func ParseNvidiaSMI(output string) (GPUInfo, error) {
	output = strings.TrimSpace(output)
	if output == "" || noGPUOutput(output) {
		return GPUInfo{}, nil
	}

	var info GPUInfo
	sc := bufio.NewScanner(strings.NewReader(output))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		dev, err := parseNvidiaLine(line)
		if err != nil {
			return GPUInfo{}, err
		}
		info.Devices = append(info.Devices, dev)
	}
	if err := sc.Err(); err != nil {
		return GPUInfo{}, fmt.Errorf("failed to read nvidia-smi output: %w", err)
	}
	return info, nil
}

// noGPUOutput matches the messages nvidia-smi prints when there is nothing to query.
func noGPUOutput(output string) bool {
	lower := strings.ToLower(output)
	return strings.Contains(lower, "no devices") ||
		strings.Contains(lower, "not found") ||
		strings.Contains(lower, "failed") ||
		strings.Contains(lower, "command not found")
}

// parseNvidiaLine parses "0, NVIDIA GeForce RTX 3080, 10240, 8192, 45".
func parseNvidiaLine(line string) (GPUDevice, error) {
	fields := strings.Split(line, ",")
	if len(fields) < 5 {
		return GPUDevice{}, fmt.Errorf("nvidia-smi output has insufficient fields: expected 5, got %d", len(fields))
	}

	var dev GPUDevice

	idStr := strings.TrimSpace(fields[0])
	id, err := strconv.Atoi(idStr)
	if err != nil {
		return GPUDevice{}, fmt.Errorf("failed to parse GPU index '%s': %w", idStr, err)
	}
	dev.ID = id

	// A GPU name can't contain commas in practice, but keep whatever sits
	// between the index and the three trailing numeric fields.
	n := len(fields)
	dev.Name = strings.TrimSpace(strings.Join(fields[1:n-3], ","))

	if dev.MemoryTotalMB, err = parseNvidiaFloat(fields[n-3], "memory total"); err != nil {
		return GPUDevice{}, err
	}
	if dev.MemoryFreeMB, err = parseNvidiaFloat(fields[n-2], "memory free"); err != nil {
		return GPUDevice{}, err
	}
	if dev.UtilizationPercent, err = parseNvidiaFloat(fields[n-1], "utilization"); err != nil {
		return GPUDevice{}, err
	}
	return dev, nil
}

// parseNvidiaFloat treats "[N/A]" and empty fields as zero.
func parseNvidiaFloat(field, what string) (float64, error) {
	s := strings.TrimSpace(field)
	if s == "" || s == "[N/A]" || s == "[Not Supported]" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse GPU %s '%s': %w", what, s, err)
	}
	return v, nil
}
