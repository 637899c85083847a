package preflight

import (
	"fmt"
	"strings"

	"github.com/munchie/minivideo/internal/platform"
)

// HelpMessage returns install instructions for a decoder of codec on distro
func HelpMessage(codec string, distro platform.Distro) string {
	lines := []string{
		fmt.Sprintf("It looks like your ffmpeg cannot decode %s on this system.", strings.ToUpper(codec)),
		"\nRecommended fix:",
	}

	var steps []string
	switch {
	case distro.Is("fedora"):
		steps = []string{
			"Enable RPM Fusion (free + nonfree):",
			"sudo dnf install https://download1.rpmfusion.org/free/fedora/rpmfusion-free-release-$(rpm -E %fedora).noarch.rpm https://download1.rpmfusion.org/nonfree/fedora/rpmfusion-nonfree-release-$(rpm -E %fedora).noarch.rpm",
			"Replace ffmpeg-free with full ffmpeg:",
			"sudo dnf swap ffmpeg-free ffmpeg --allowerasing",
			"Then install libraries:",
			"sudo dnf install ffmpeg ffmpeg-libs",
			"Optional multimedia refresh (avoid weak deps):",
			"sudo dnf update @multimedia --setopt=install_weak_deps=False --exclude=PackageKit-gstreamer-plugin",
		}
	case distro.Is("ubuntu", "debian"):
		steps = []string{
			"sudo apt update",
			"sudo apt install ffmpeg",
			"On Ubuntu, if needed: sudo apt install libavcodec-extra",
		}
	case distro.Is("arch", "manjaro"):
		steps = []string{
			"sudo pacman -Syu ffmpeg",
		}
	case distro.Is("opensuse-tumbleweed", "opensuse-leap", "opensuse", "suse"):
		steps = []string{
			"Enable Packman repo and install full ffmpeg (commands vary by version):",
			"sudo zypper ar -cfp 90 https://ftp.gwdg.de/pub/linux/misc/packman/suse/openSUSE_Tumbleweed/ packman",
			"sudo zypper dup --from packman --allow-vendor-change",
			"sudo zypper in ffmpeg",
		}
	default:
		steps = []string{
			"Install a full-featured ffmpeg from your distribution or a trusted multimedia repo.",
			"Ensure software decoders for H.264 (h264) and HEVC (hevc) are present in `ffmpeg -decoders`.",
		}
	}

	for _, s := range steps {
		lines = append(lines, "  - "+s)
	}
	lines = append(lines, "\nAfter installing, restart this app and try again.")
	return strings.Join(lines, "\n")
}
