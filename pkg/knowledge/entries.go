package knowledge

// SupportContext is the fixed passage the extractive QA engine reads answers
// from.
const SupportContext = `Blue Screen Error: This issue usually occurs due to hardware or driver problems.
You can try the following steps to resolve it:
1. Note the error code displayed.
2. Restart your computer.
3. Uninstall recent drivers or updates if the problem started recently.

Slow Performance: If your system is slow, try the following:
1. Close background programs that you aren't using.
2. Run antivirus software to check for malware.
3. Consider upgrading your hardware, such as adding more RAM or an SSD.

Internet Connectivity Issues: If you're facing connectivity problems:
1. Ensure that your network drivers are up to date.
2. Restart your modem and router.
3. Check if the problem is specific to your device or all devices.

Virus Problems: Run a full system scan using reliable antivirus software. Make sure your antivirus definitions are up to date.

Software Updates: Ensure both your operating system and applications are up to date to ensure maximum compatibility and performance.
`

const blueScreenRemedy = "To troubleshoot a blue screen error:\n" +
	"1. Note any error codes displayed.\n" +
	"2. Restart your computer.\n" +
	"3. Check for recent hardware or software changes.\n" +
	"4. Run 'sfc /scannow' to check for corrupted system files.\n" +
	"5. Use the 'Event Viewer' to inspect system logs for errors.\n" +
	"6. If the problem persists, consider a clean Windows reinstallation."

// DefaultEntries is the curated support catalogue, in match order.
// Generic triggers ("slow performance") sit before OS-specific ones
// ("mac slow performance"), so the generic remedy wins when both occur.
var DefaultEntries = []Entry{
	// Windows
	{Trigger: "blue screen", Remedy: blueScreenRemedy},
	{Trigger: "screen is blue", Remedy: blueScreenRemedy},
	{Trigger: "slow performance", Remedy: "To improve performance on Windows:\n" +
		"1. Close unnecessary applications and background processes.\n" +
		"2. Run a full system virus scan with reliable antivirus software.\n" +
		"3. Use 'Task Manager' to identify resource-hogging programs.\n" +
		"4. Check for system updates (Windows Update).\n" +
		"5. Defragment your hard drive (not applicable for SSDs).\n" +
		"6. Increase virtual memory if your RAM is low.\n" +
		"7. Consider upgrading your hardware (more RAM, SSD, etc.)."},
	{Trigger: "internet connection", Remedy: "To troubleshoot internet connectivity issues:\n" +
		"1. Check if Wi-Fi is enabled and you're connected to the correct network.\n" +
		"2. Restart your modem and router.\n" +
		"3. Run the Windows Network Troubleshooter.\n" +
		"4. Disable and re-enable the network adapter in 'Device Manager'.\n" +
		"5. Check for updated network drivers.\n" +
		"6. If using VPN or proxy, try disabling them temporarily."},
	{Trigger: "software update", Remedy: "For software and Windows updates:\n" +
		"1. Open 'Windows Update' from the Control Panel or Settings.\n" +
		"2. Ensure automatic updates are enabled.\n" +
		"3. Regularly check for updates to critical software (antivirus, drivers, etc.).\n" +
		"4. Restart the computer after significant updates."},
	{Trigger: "virus", Remedy: "If you suspect a virus or malware:\n" +
		"1. Run a full antivirus scan with updated definitions.\n" +
		"2. Boot into Safe Mode and run a scan again for persistent threats.\n" +
		"3. Consider using specialized anti-malware tools (e.g., Malwarebytes).\n" +
		"4. Check for suspicious programs in 'Task Manager'.\n" +
		"5. Reset your browser settings if you notice pop-ups or unwanted toolbars."},

	// macOS
	{Trigger: "mac slow performance", Remedy: "To improve performance on macOS:\n" +
		"1. Check the Activity Monitor for resource-heavy processes.\n" +
		"2. Restart your Mac and close unused apps.\n" +
		"3. Clear storage space by removing unnecessary files or moving them to external drives.\n" +
		"4. Disable startup programs from System Preferences > Users & Groups.\n" +
		"5. Run Disk Utility to repair disk permissions.\n" +
		"6. Consider upgrading RAM or switching to an SSD."},
	{Trigger: "mac wifi issues", Remedy: "If you're having Wi-Fi issues on macOS:\n" +
		"1. Restart your router and Mac.\n" +
		"2. Go to System Preferences > Network, and check Wi-Fi settings.\n" +
		"3. Forget and reconnect to the Wi-Fi network.\n" +
		"4. Reset the 'PRAM' and 'SMC' on your Mac.\n" +
		"5. Check if other devices are connecting to the same network."},
	{Trigger: "mac not booting", Remedy: "If your Mac is not booting:\n" +
		"1. Reset 'PRAM' by holding 'Option + Command + P + R' during startup.\n" +
		"2. Boot into Safe Mode by holding 'Shift' during startup.\n" +
		"3. Run 'Disk Utility' from macOS Recovery Mode (Command + R).\n" +
		"4. Reinstall macOS if none of the above steps work."},
	{Trigger: "mac software update", Remedy: "To update macOS or applications:\n" +
		"1. Go to System Preferences > Software Update.\n" +
		"2. Check if your Mac is compatible with the latest macOS version.\n" +
		"3. For App Store apps, open the App Store and check for updates.\n" +
		"4. Ensure enough disk space for the update (at least 10-15 GB)."},

	// Linux
	{Trigger: "linux slow performance", Remedy: "To improve performance on Linux:\n" +
		"1. Check resource usage with 'top' or 'htop' command.\n" +
		"2. Disable unnecessary services from starting up with 'systemctl'.\n" +
		"3. Clear temporary files and logs with 'sudo apt-get clean' or 'sudo dnf clean all'.\n" +
		"4. Use a lightweight desktop environment (LXDE, XFCE).\n" +
		"5. Add more swap space if your RAM is limited.\n" +
		"6. Upgrade hardware, such as RAM or SSD, for a performance boost."},
	{Trigger: "linux network issues", Remedy: "To troubleshoot Linux network issues:\n" +
		"1. Check your network interface with 'ip a' or 'ifconfig'.\n" +
		"2. Restart the network service with 'sudo systemctl restart NetworkManager'.\n" +
		"3. Check if your firewall is blocking the connection (use 'ufw' or 'firewalld').\n" +
		"4. Inspect DNS settings in '/etc/resolv.conf'.\n" +
		"5. Update or reinstall network drivers if needed."},
	{Trigger: "linux package update", Remedy: "To update Linux packages and software:\n" +
		"1. For Debian-based distros: 'sudo apt update && sudo apt upgrade'.\n" +
		"2. For Red Hat-based distros: 'sudo dnf update' or 'sudo yum update'.\n" +
		"3. For Arch-based distros: 'sudo pacman -Syu'.\n" +
		"4. Check if your repositories are up to date and working correctly.\n" +
		"5. Reboot after major kernel or system updates."},
	{Trigger: "linux disk issues", Remedy: "If you're having disk-related issues on Linux:\n" +
		"1. Check disk usage with 'df -h' or 'du -sh' for specific folders.\n" +
		"2. Use 'fsck' to check and repair file system errors.\n" +
		"3. Mount disks manually if they aren't recognized (use 'mount' command).\n" +
		"4. Check disk health using 'smartctl' from 'smartmontools' package."},

	// Any OS
	{Trigger: "battery draining", Remedy: "To improve battery life:\n" +
		"1. Reduce screen brightness.\n" +
		"2. Close unused applications and background processes.\n" +
		"3. Turn off Bluetooth and Wi-Fi when not in use.\n" +
		"4. Adjust power settings (use power saver modes).\n" +
		"5. For laptops, calibrate the battery by fully charging and discharging it."},
	{Trigger: "overheating", Remedy: "To troubleshoot overheating:\n" +
		"1. Check for dust in your device's fans and vents.\n" +
		"2. Use your device on a flat, hard surface to improve airflow.\n" +
		"3. Monitor CPU and GPU temperatures with third-party tools.\n" +
		"4. Lower the performance settings or enable battery saver mode.\n" +
		"5. Apply fresh thermal paste if your device is old and continues to overheat."},
}

// Default returns a Base over DefaultEntries.
func Default() *Base {
	return NewBase(DefaultEntries)
}
